package token

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	tok, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if tok != "" {
		t.Errorf("expected empty token, got %q", tok)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-token")
	if err := os.WriteFile(path, []byte("  tok-abc123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tok, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tok != "tok-abc123" {
		t.Errorf("expected tok-abc123, got %q", tok)
	}
}

func TestLoadUnreadablePath(t *testing.T) {
	// A directory is readable as a path but not as a file; this must be a
	// real error, not the empty-credential state.
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error reading a directory")
	}
}

func TestWaitForFileAlreadyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-token")
	if err := os.WriteFile(path, []byte("tok\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WaitForFile(path, 2*time.Second); err != nil {
		t.Fatalf("expected immediate success, got: %v", err)
	}
}

func TestWaitForFileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-token")

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("tok"), 0o600)
	}()

	if err := WaitForFile(path, 5*time.Second); err != nil {
		t.Fatalf("expected success after create, got: %v", err)
	}
}

func TestWaitForFileIgnoresEmptyUntilWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-token")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("tok"), 0o600)
	}()

	if err := WaitForFile(path, 5*time.Second); err != nil {
		t.Fatalf("expected success once content arrives, got: %v", err)
	}
}

func TestWaitForFileDeadline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-token")

	err := WaitForFile(path, 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected deadline error")
	}
	if !strings.Contains(err.Error(), "no token") {
		t.Errorf("unexpected error: %v", err)
	}
}
