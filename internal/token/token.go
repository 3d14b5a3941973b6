// Package token loads the shared-secret credential the approval service
// provisions at setup time.
package token

import (
	"fmt"
	"os"
	"strings"
)

// Load reads the credential at path. A missing file is the empty
// credential, not an error — whether that is fatal is the caller's call
// (the approval client refuses to authenticate with it).
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read auth token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
