package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitegrab"
	"golang.org/x/time/rate"
)

// maxSolverResponseBytes caps how much of a solver response is read.
const maxSolverResponseBytes = 64 * 1024

// Ensure SolverClient implements sitegrab.CaptchaSolver at compile time.
var _ sitegrab.CaptchaSolver = (*SolverClient)(nil)

// SolverClient submits challenge payloads to a CAPTCHA solving service.
//
// The service receives a form POST with the fields key and data and answers
// with a JSON object {"solution": "..."}. A missing or empty solution means
// the service could not solve the payload.
type SolverClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	delays   []time.Duration
}

// NewSolverClient creates a client for the service at endpoint.
func NewSolverClient(endpoint, apiKey string, opts ...Option) *SolverClient {
	o := newOptions(opts)
	return &SolverClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   o.client,
		limiter:  rate.NewLimiter(rate.Limit(o.rate), 1),
		delays:   o.delays,
	}
}

type solveResponse struct {
	Solution string `json:"solution"`
	Error    string `json:"error"`
}

// Solve submits payload and returns the solution, or "" if the service had none.
// Transport failures and 5xx responses are retried; 4xx responses are not.
// An error reported by the service is returned as EUNSOLVABLE.
func (c *SolverClient) Solve(ctx context.Context, payload string) (string, error) {
	if c.endpoint == "" {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "solving service endpoint not configured")
	}

	var solution string
	err := sitegrab.Retry(ctx, c.delays, nil, func(ctx context.Context) error {
		s, err := c.submit(ctx, payload)
		solution = s
		return err
	})
	if err != nil {
		return "", err
	}
	return solution, nil
}

func (c *SolverClient) submit(ctx context.Context, payload string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	form := url.Values{"key": {c.apiKey}, "data": {payload}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSolverResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading solver response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("solving service: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", sitegrab.Errorf(sitegrab.EINVALID, "solving service rejected request: HTTP %d", resp.StatusCode)
	}

	var out solveResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "decoding solver response: %v", err)
	}
	if msg := strings.TrimSpace(out.Error); msg != "" {
		return "", sitegrab.Errorf(sitegrab.EUNSOLVABLE, "solving service: %s", msg)
	}
	return strings.TrimSpace(out.Solution), nil
}
