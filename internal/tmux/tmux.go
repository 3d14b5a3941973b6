// Package tmux scripts decisions into the agent's interactive prompt the
// way a human at the keyboard would answer it.
package tmux

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ppiankov/tollgate/internal/approval"
)

// Key names understood by tmux send-keys.
const (
	keyEnter = "Enter"
	keyDown  = "Down"
	keyTab   = "Tab"
)

// Step is one discrete send-keys invocation. Literal steps type text into
// the prompt's note field; key steps press a single named key.
type Step struct {
	Literal bool
	Input   string
}

// Steps maps a decision onto the prompt's fixed keystroke script. The
// prompt opens with the affirmative choice selected and keeps an optional
// feedback field behind Tab, so: allow confirms the default, deny moves the
// selection down twice first, and a comment is typed before confirming.
func Steps(d approval.Decision) []Step {
	var steps []Step
	if d.Outcome == approval.Deny {
		steps = append(steps, Step{Input: keyDown}, Step{Input: keyDown})
	}
	if d.Comment != "" {
		steps = append(steps, Step{Input: keyTab}, Step{Literal: true, Input: d.Comment})
	}
	return append(steps, Step{Input: keyEnter})
}

// Client sends keystrokes to one tmux session.
type Client struct {
	bin     string
	session string
}

// NewClient returns a client that drives the named session using bin.
func NewClient(bin, session string) *Client {
	if bin == "" {
		bin = "tmux"
	}
	return &Client{bin: bin, session: session}
}

// SendKey presses one named key in the session.
func (c *Client) SendKey(key string) error {
	return c.run("send-keys", "-t", c.session, key)
}

// SendText types text as literal input, so key names inside it are not
// interpreted.
func (c *Client) SendText(text string) error {
	return c.run("send-keys", "-t", c.session, "-l", "--", text)
}

// HasSession reports whether the session exists.
func (c *Client) HasSession() bool {
	return c.run("has-session", "-t", c.session) == nil
}

// Respond scripts d into the session, one send-keys call per step, in
// order. It stops at the first failure: later steps depend on the cursor
// state the failed step would have left behind.
func (c *Client) Respond(d approval.Decision) error {
	for _, s := range Steps(d) {
		var err error
		if s.Literal {
			err = c.SendText(s.Input)
		} else {
			err = c.SendKey(s.Input)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) run(args ...string) error {
	out, err := exec.Command(c.bin, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", c.bin, args[0], err, msg)
		}
		return fmt.Errorf("%s %s: %w", c.bin, args[0], err)
	}
	return nil
}
