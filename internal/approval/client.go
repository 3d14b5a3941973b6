// Package approval obtains human decisions for intercepted tool calls from
// a remote approval service.
package approval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requestTimeout bounds the wait for a human decision. Reviewers are slow;
// the agent's hook runner must be configured to out-wait this ceiling.
const requestTimeout = 300 * time.Second

// ErrMissingCredential means no auth token was available to authenticate
// the request. Detected before any I/O happens.
var ErrMissingCredential = errors.New("auth token not found; is the approval server set up?")

// response is the approval service's reply shape.
type response struct {
	PermissionDecision string `json:"permissionDecision"`
	Message            string `json:"message"`
}

// Client issues blocking approval requests to one service endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the approval service at baseURL,
// authenticating with token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Request posts one event to {base}/approve and blocks until the reviewer
// decides or the ceiling expires. No retries. Connection failure, a
// non-success status, and timeout are distinct errors; callers map all of
// them to a fail-closed Deny.
func (c *Client) Request(ev Event) (Decision, error) {
	if c.token == "" {
		return Decision{}, ErrMissingCredential
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return Decision{}, fmt.Errorf("encode approval request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/approve", bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("create approval request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Decision{}, fmt.Errorf("approval request timed out after %gs", c.http.Timeout.Seconds())
		}
		return Decision{}, fmt.Errorf("approval server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Decision{}, fmt.Errorf("approval server returned HTTP %d", resp.StatusCode)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Decision{}, fmt.Errorf("decode approval response: %w", err)
	}

	return normalize(r), nil
}

// normalize maps the reviewer's reply onto the two-valued outcome. Only an
// explicit "deny" denies; any other value, or a missing field, allows —
// server silence is not a denial.
func normalize(r response) Decision {
	d := Decision{Outcome: Allow, Comment: r.Message}
	if r.PermissionDecision == string(Deny) {
		d.Outcome = Deny
	}
	return d
}
