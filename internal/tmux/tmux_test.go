package tmux

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/tollgate/internal/approval"
)

func TestSteps(t *testing.T) {
	tests := []struct {
		name     string
		decision approval.Decision
		want     []Step
	}{
		{
			"allow without comment",
			approval.Decision{Outcome: approval.Allow},
			[]Step{{Input: "Enter"}},
		},
		{
			"allow with comment",
			approval.Decision{Outcome: approval.Allow, Comment: "ok"},
			[]Step{{Input: "Tab"}, {Literal: true, Input: "ok"}, {Input: "Enter"}},
		},
		{
			"deny without comment",
			approval.Decision{Outcome: approval.Deny},
			[]Step{{Input: "Down"}, {Input: "Down"}, {Input: "Enter"}},
		},
		{
			"deny with comment",
			approval.Decision{Outcome: approval.Deny, Comment: "too risky"},
			[]Step{{Input: "Down"}, {Input: "Down"}, {Input: "Tab"}, {Literal: true, Input: "too risky"}, {Input: "Enter"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Steps(tt.decision)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Steps(%+v):\n got: %+v\nwant: %+v", tt.decision, got, tt.want)
			}
		})
	}
}

// stubTmux writes a fake tmux binary that appends each invocation's
// arguments to a log file, one line per call. An optional prelude runs
// before logging, so tests can inject failures.
func stubTmux(t *testing.T, prelude string) (bin, logPath string) {
	t.Helper()
	dir := t.TempDir()
	bin = filepath.Join(dir, "tmux")
	logPath = filepath.Join(dir, "calls.log")

	script := "#!/bin/sh\n" + prelude + "echo \"$@\" >> " + logPath + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin, logPath
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRespondAllowWithComment(t *testing.T) {
	bin, logPath := stubTmux(t, "")

	c := NewClient(bin, "agent")
	err := c.Respond(approval.Decision{Outcome: approval.Allow, Comment: "looks safe"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	want := []string{
		"send-keys -t agent Tab",
		"send-keys -t agent -l -- looks safe",
		"send-keys -t agent Enter",
	}
	if got := readCalls(t, logPath); !reflect.DeepEqual(got, want) {
		t.Errorf("calls:\n got: %q\nwant: %q", got, want)
	}
}

func TestRespondDeny(t *testing.T) {
	bin, logPath := stubTmux(t, "")

	c := NewClient(bin, "agent")
	if err := c.Respond(approval.Decision{Outcome: approval.Deny}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	want := []string{
		"send-keys -t agent Down",
		"send-keys -t agent Down",
		"send-keys -t agent Enter",
	}
	if got := readCalls(t, logPath); !reflect.DeepEqual(got, want) {
		t.Errorf("calls:\n got: %q\nwant: %q", got, want)
	}
}

func TestRespondStopsAtFirstFailure(t *testing.T) {
	// Fail partway through the script, as if the session vanished.
	prelude := "for a in \"$@\"; do if [ \"$a\" = Tab ]; then exit 1; fi; done\n"
	bin, logPath := stubTmux(t, prelude)

	c := NewClient(bin, "agent")
	err := c.Respond(approval.Decision{Outcome: approval.Deny, Comment: "no"})
	if err == nil {
		t.Fatal("expected error when a step fails")
	}

	calls := readCalls(t, logPath)
	for _, call := range calls {
		if strings.Contains(call, "Enter") {
			t.Errorf("confirm was sent after a failed step: %q", calls)
		}
		if strings.Contains(call, "-l --") {
			t.Errorf("literal text was sent after a failed step: %q", calls)
		}
	}
}

func TestRespondErrorIncludesStderr(t *testing.T) {
	bin, _ := stubTmux(t, "echo \"can't find session: agent\" >&2\nexit 1\n")

	c := NewClient(bin, "agent")
	err := c.Respond(approval.Decision{Outcome: approval.Allow})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "can't find session") {
		t.Errorf("expected tmux stderr in error, got: %v", err)
	}
}

func TestHasSession(t *testing.T) {
	bin, _ := stubTmux(t, "")
	if !NewClient(bin, "agent").HasSession() {
		t.Error("expected HasSession true for exit 0")
	}

	bin, _ = stubTmux(t, "exit 1\n")
	if NewClient(bin, "agent").HasSession() {
		t.Error("expected HasSession false for exit 1")
	}
}

func TestNewClientDefaultsBin(t *testing.T) {
	c := NewClient("", "agent")
	if c.bin != "tmux" {
		t.Errorf("expected default bin tmux, got %q", c.bin)
	}
}
