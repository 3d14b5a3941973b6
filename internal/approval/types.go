package approval

import "encoding/json"

// Outcome is the binary gate verdict.
type Outcome string

const (
	Allow Outcome = "allow"
	Deny  Outcome = "deny"
)

// Event is one intercepted tool call awaiting a decision. ToolInput is
// opaque: it is forwarded to the reviewer verbatim and never inspected.
type Event struct {
	ToolName  string          `json:"tool_name"`
	ToolInput json.RawMessage `json:"tool_input"`
}

// Decision is the finalized verdict plus the reviewer's optional note.
// Exactly one Decision is produced per invocation, either from the remote
// response or from local fallback policy.
type Decision struct {
	Outcome Outcome
	Comment string
}
