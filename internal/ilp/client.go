// Package ilp talks to the external exact optimizer. The optimizer is a
// black box reached over HTTP: it accepts the same instance JSON as the
// heuristic endpoints and returns an assignment with its exact objective
// value. The rest of the repository stays correct without it.
package ilp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

// ErrNoOptimizer is returned when no optimizer URL is configured.
var ErrNoOptimizer = errors.New("ilp: no optimizer configured")

// Result is the optimizer's answer: an exact schedule and its objective.
type Result struct {
	Solution solver.Schedule `json:"solution"`
	Z        float64         `json:"z"`
}

// Client invokes the optimizer's solve endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient returns a client for the optimizer at baseURL. An empty baseURL
// yields a client whose Solve always reports ErrNoOptimizer.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Solve submits the instance and decodes the optimizer's schedule.
func (c *Client) Solve(ctx context.Context, inst *instance.Instance) (*Result, error) {
	if c == nil || c.baseURL == "" {
		return nil, ErrNoOptimizer
	}

	body, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("ilp: encode instance: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ilp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ilp: optimizer unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ilp: optimizer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ilp: decode response: %w", err)
	}
	return &result, nil
}
