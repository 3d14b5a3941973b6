// Package settings registers the gate in the agent's settings file. The
// file belongs to the agent and may hold arbitrary other configuration, so
// every edit is read-modify-write over untyped JSON with an atomic rename.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// hookEvent is the settings key the gate registers under.
const hookEvent = "PreToolUse"

// hookTimeout (seconds) gives the reviewer the full approval window plus
// slack before the agent's hook runner gives up on the process.
const hookTimeout = 600

// DefaultPath returns the agent's user-level settings file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Install registers command as a PreToolUse hook for matcher, replacing any
// previous tollgate entry. Unrelated settings and foreign hook entries are
// preserved. Returns true when the file changed.
func Install(path, matcher, command string) (bool, error) {
	root, err := load(path)
	if err != nil {
		return false, err
	}

	hooks, _ := root["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
	}
	entries, _ := hooks[hookEvent].([]any)

	entry := gateEntry(matcher, command)
	kept := make([]any, 0, len(entries)+1)
	current := false
	for _, e := range entries {
		if m, ok := e.(map[string]any); ok && isGateEntry(m) {
			if !current && reflect.DeepEqual(m, entry) {
				current = true
				kept = append(kept, e)
			}
			// Stale or duplicate gate entries are dropped.
			continue
		}
		kept = append(kept, e)
	}
	if current && len(kept) == len(entries) {
		return false, nil
	}
	if !current {
		kept = append(kept, entry)
	}

	hooks[hookEvent] = kept
	root["hooks"] = hooks
	return true, write(path, root)
}

// Uninstall removes every tollgate hook entry. Returns true when the file
// changed; a missing file is left missing.
func Uninstall(path string) (bool, error) {
	root, err := load(path)
	if err != nil {
		return false, err
	}

	hooks, _ := root["hooks"].(map[string]any)
	entries, _ := hooks[hookEvent].([]any)

	kept := make([]any, 0, len(entries))
	for _, e := range entries {
		if m, ok := e.(map[string]any); ok && isGateEntry(m) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(entries) {
		return false, nil
	}

	if len(kept) == 0 {
		delete(hooks, hookEvent)
	} else {
		hooks[hookEvent] = kept
	}
	if len(hooks) == 0 {
		delete(root, "hooks")
	} else {
		root["hooks"] = hooks
	}
	return true, write(path, root)
}

func gateEntry(matcher, command string) map[string]any {
	return map[string]any{
		"matcher": matcher,
		"hooks": []any{
			map[string]any{
				"type":    "command",
				"command": command,
				// float64 so entries round-tripped through JSON compare
				// equal to freshly built ones.
				"timeout": float64(hookTimeout),
			},
		},
	}
}

// isGateEntry reports whether a PreToolUse entry runs this binary.
func isGateEntry(entry map[string]any) bool {
	nested, _ := entry["hooks"].([]any)
	for _, h := range nested {
		m, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, _ := m["command"].(string); strings.Contains(cmd, "tollgate") {
			return true
		}
	}
	return false
}

func load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return root, nil
}

func write(path string, root map[string]any) error {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return os.Rename(tmp, path)
}
