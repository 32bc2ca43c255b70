package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/stormcast-dev/stormcast/internal/transport"
)

// HTTPOptions configures an HTTPAction: headers, body, query, and a timeout
// that falls back to the session timeout when unset.
type HTTPOptions struct {
	Headers map[string]string
	Query   map[string]string
	Body    any
	Timeout time.Duration
}

// HTTPAction performs one HTTP request via the transport.HTTPClient found on
// the run context. On success it calls AddResult(self, response); on
// network/timeout failure it returns the error, which RunAction records
// under session.Errors per the uniform failure policy.
type HTTPAction struct {
	Method  string
	Path    string
	Options HTTPOptions
}

// Key returns the action's structural identity: method and path only
// ("HTTP GET /a" and "HTTP GET /b" are distinct keys) — options are
// not part of identity, since two calls to the same endpoint with different
// bodies still coalesce as repeated samples of one action.
func (a *HTTPAction) Key() string { return a.Method + " " + a.Path }

func (a *HTTPAction) run(ctx context.Context, s *Session) error {
	client, ok := httpClientFrom(ctx)
	if !ok {
		return fmt.Errorf("no HTTP client configured for session %q", s.ID)
	}

	timeout := a.Options.Timeout
	if timeout == 0 {
		timeout = s.Timeout()
	}

	start := time.Now()
	resp, err := client.Do(ctx, transport.HTTPRequest{
		Method:  a.Method,
		Path:    a.Path,
		Headers: a.Options.Headers,
		Query:   a.Options.Query,
		Body:    a.Options.Body,
		Timeout: timeout,
	})
	elapsed := time.Since(start)
	s.AddMetric(metricKey("http", a.Path), elapsed)
	if err != nil {
		return err
	}

	s.AddResult(a.Key(), resp)
	return nil
}

func metricKey(kind, name string) string { return kind + " " + name }

// Get builds and runs an HTTP GET action.
func (s *Session) Get(ctx context.Context, path string, opts HTTPOptions) *Session {
	return RunAction(ctx, s, &HTTPAction{Method: "GET", Path: path, Options: opts})
}

// Post builds and runs an HTTP POST action.
func (s *Session) Post(ctx context.Context, path string, opts HTTPOptions) *Session {
	return RunAction(ctx, s, &HTTPAction{Method: "POST", Path: path, Options: opts})
}

// Put builds and runs an HTTP PUT action.
func (s *Session) Put(ctx context.Context, path string, opts HTTPOptions) *Session {
	return RunAction(ctx, s, &HTTPAction{Method: "PUT", Path: path, Options: opts})
}

// Patch builds and runs an HTTP PATCH action.
func (s *Session) Patch(ctx context.Context, path string, opts HTTPOptions) *Session {
	return RunAction(ctx, s, &HTTPAction{Method: "PATCH", Path: path, Options: opts})
}

// Delete builds and runs an HTTP DELETE action.
func (s *Session) Delete(ctx context.Context, path string, opts HTTPOptions) *Session {
	return RunAction(ctx, s, &HTTPAction{Method: "DELETE", Path: path, Options: opts})
}
