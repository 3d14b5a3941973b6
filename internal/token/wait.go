package token

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WaitForFile blocks until the file at path holds a non-empty token, or
// timeout passes. It lets setup scripts start the approval server and the
// agent in one shot: the server writes the token, the waiter sees it land.
func WaitForFile(path string, timeout time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Check only after the watch is in place; a token provisioned between
	// stat and watch would otherwise be missed.
	if tok, err := Load(path); err == nil && tok != "" {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watch %s: event channel closed", dir)
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if tok, err := Load(path); err == nil && tok != "" {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watch %s: error channel closed", dir)
			}
			return fmt.Errorf("watch %s: %w", dir, err)

		case <-deadline.C:
			return fmt.Errorf("no token at %s after %s", path, timeout)
		}
	}
}
