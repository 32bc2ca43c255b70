// Package transport provides the HTTP and WebSocket adapters the engine's
// Action variants run against. It deliberately knows nothing about Session,
// Scenario or Environment — the engine depends on these two narrow
// interfaces, not on any concrete client.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPRequest is the input to one HTTPClient.Do call, built from an engine
// HTTP action's method/path/options.
type HTTPRequest struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    any
	Timeout time.Duration
}

// HTTPResponse is the value stored under results[action] on success.
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// HTTPClient performs one HTTP request against the target service. The
// engine's HTTP action depends on this interface, never on *http.Client
// directly, so a test scenario can supply a fake.
type HTTPClient interface {
	Do(ctx context.Context, req HTTPRequest) (*HTTPResponse, error)
}

// Client is the default HTTPClient, a thin wrapper over net/http: a
// bearer-token header, JSON body marshaling, a bounded per-request timeout,
// and a User-Agent identifying the load generator to the target service.
type Client struct {
	BaseURL    string
	BearerAuth string
	httpClient *http.Client
}

// NewClient creates a Client against baseURL. bearerAuth is sent as
// "Authorization: Bearer <token>" on every request when non-empty.
func NewClient(baseURL, bearerAuth string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		BearerAuth: bearerAuth,
		httpClient: &http.Client{},
	}
}

// Do performs req. req.Timeout, when non-zero, bounds this single call
// regardless of ctx's own deadline.
func (c *Client) Do(ctx context.Context, req HTTPRequest) (*HTTPResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	u := c.BaseURL + req.Path
	if len(req.Query) > 0 {
		q := url.Values{}
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		raw, ok := req.Body.([]byte)
		if !ok {
			encoded, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			raw = encoded
		}
		bodyReader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("User-Agent", "stormcast-loadgen/1.0")
	if c.BearerAuth != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.BearerAuth)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: truncate(body, 200)}
	}

	return &HTTPResponse{StatusCode: resp.StatusCode, Headers: resp.Header, Body: body}, nil
}

// HTTPStatusError reports a non-2xx/3xx response so load scenarios can
// branch on StatusCode.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func truncate(b []byte, n int) string {
	s := string(b)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
