// Package gate runs the approval state machine for one intercepted tool
// call. One process, one decision: decode the event, obtain a verdict,
// mirror it into the agent's session, emit exactly one envelope.
package gate

import (
	"fmt"
	"io"

	"github.com/ppiankov/tollgate/internal/approval"
	"github.com/ppiankov/tollgate/internal/config"
	"github.com/ppiankov/tollgate/internal/hook"
	"github.com/ppiankov/tollgate/internal/tmux"
	"github.com/ppiankov/tollgate/internal/token"
)

// Run gates one intercepted tool call read from in. The decision envelope
// goes to out — the only thing ever written there — and diagnostics go to
// errw. The policy is fail-open before an approval attempt (no session,
// undecodable event) and fail-closed after one (credential or transport
// failure).
func Run(cfg config.Config, in io.Reader, out, errw io.Writer) error {
	// No session, no gate: the process is a pass-through.
	if cfg.TmuxSession == "" {
		return hook.Write(out, approval.Decision{Outcome: approval.Allow})
	}

	// An event the gate cannot understand is allowed through silently:
	// the gate must never be the reason a normal operation stalls.
	ev, err := hook.Decode(in)
	if err != nil {
		return hook.Write(out, approval.Decision{Outcome: approval.Allow})
	}

	cred, err := token.Load(cfg.TokenFile)
	if err != nil {
		// Unreadable is worse than missing but lands in the same place:
		// no usable credential, so the request below fails closed.
		fmt.Fprintf(errw, "tollgate: %v\n", err)
		cred = ""
	}

	decision, err := approval.NewClient(cfg.ServerURL, cred).Request(ev)
	if err != nil {
		decision = approval.Decision{
			Outcome: approval.Deny,
			Comment: fmt.Sprintf("Approval request failed: %v", err),
		}
	}

	relay(cfg, decision, errw)
	return hook.Write(out, decision)
}

// relay mirrors the finalized decision into the tmux session so the prompt
// the human sees agrees with the envelope the agent consumed. Best-effort:
// failures are reported on errw and go no further.
func relay(cfg config.Config, d approval.Decision, errw io.Writer) {
	session := tmux.NewClient(cfg.TmuxBin, cfg.TmuxSession)
	if err := session.Respond(d); err != nil {
		fmt.Fprintf(errw, "tollgate: send %s to tmux session %q: %v\n", d.Outcome, cfg.TmuxSession, err)
		return
	}
	fmt.Fprintf(errw, "tollgate: sent %s to tmux session %q\n", d.Outcome, cfg.TmuxSession)
}
