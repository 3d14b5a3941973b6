// Package hook speaks the agent's permission-hook wire protocol: one
// interception event in on stdin, one decision envelope out on stdout.
package hook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/tollgate/internal/approval"
)

// eventName tags every envelope; the agent's hook runner dispatches on it.
const eventName = "PreToolUse"

// envelope is the exact shape the agent's permission pipeline expects.
type envelope struct {
	HookSpecificOutput specificOutput `json:"hookSpecificOutput"`
}

type specificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// Decode reads one interception event from r. The whole input must be a
// single JSON message; trailing bytes make it malformed. A malformed
// message is a recognized state, not a fault: callers short-circuit to a
// permissive decision without touching the network or the session.
func Decode(r io.Reader) (approval.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return approval.Event{}, fmt.Errorf("read hook event: %w", err)
	}
	var ev approval.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return approval.Event{}, fmt.Errorf("parse hook event: %w", err)
	}
	return ev, nil
}

// Write serializes d as one decision envelope on w. This is the process's
// only stdout output and must happen exactly once per invocation, whichever
// path produced the decision.
func Write(w io.Writer, d approval.Decision) error {
	out := envelope{
		HookSpecificOutput: specificOutput{
			HookEventName:            eventName,
			PermissionDecision:       string(d.Outcome),
			PermissionDecisionReason: d.Comment,
		},
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("write decision envelope: %w", err)
	}
	return nil
}
