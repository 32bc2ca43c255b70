package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the process-wide default for config.timeout and
// config.scenario_timeout when the session does not set one. Read through
// Session.Timeout whenever an action, an await or Worker.Start needs a
// deadline, never held as mutable global state.
const DefaultTimeout = 10 * time.Second

// ScenarioRef identifies the scenario module that owns a Session, used both
// for Session.ID generation and as the default session name for tagging.
type ScenarioRef struct {
	Module string
}

// AsyncTag wraps one (key, value) pair taken from a joined child's results
// or metrics. It is the single source of provenance produced by the
// Merger (see merge.go) — async/await and with_response both consume it,
// and nothing else in the engine constructs one.
type AsyncTag struct {
	Action string
	Value  any
}

// Session is the mutable execution context threaded through one scenario
// instance. It is owned exclusively by the goroutine executing its scenario;
// forks produce independent child Sessions that are merged back only at
// Await, never mutated concurrently with the parent.
type Session struct {
	ID       string
	Scenario ScenarioRef
	Config   map[string]any
	Assigns  map[string]any
	Errors   map[string]error

	results    map[string][]any
	metrics    map[string][]any
	asyncTasks map[string][]*Handle
}

// NewSession creates a fresh Session for scenario, with a shallow copy of
// config so later mutation of the caller's map cannot reach into the session.
func NewSession(scenario ScenarioRef, config map[string]any) *Session {
	cfg := make(map[string]any, len(config))
	for k, v := range config {
		cfg[k] = v
	}
	return &Session{
		ID:         scenario.Module + " " + uuid.New().String(),
		Scenario:   scenario,
		Config:     cfg,
		Assigns:    make(map[string]any),
		Errors:     make(map[string]error),
		results:    make(map[string][]any),
		metrics:    make(map[string][]any),
		asyncTasks: make(map[string][]*Handle),
	}
}

// fork produces an independent child Session: a shallow copy of the parent's
// config and assigns, with empty results/metrics/errors/async_tasks. Used by
// Async, SpreadAsync and RunScenario. Connection handles in assigns (e.g.
// ws_conn) are not duplicated — the child must establish its own.
func (s *Session) fork(module string) *Session {
	cfg := make(map[string]any, len(s.Config))
	for k, v := range s.Config {
		cfg[k] = v
	}
	child := NewSession(ScenarioRef{Module: module}, cfg)
	for k, v := range s.Assigns {
		if k == wsConnAssignKey {
			continue
		}
		child.Assigns[k] = v
	}
	return child
}

// coalesce folds one more value into key: absent -> v; single -> [v, prev];
// list -> [v | list]. Always stored as a list internally; callers project to a bare
// value at the external boundary via result/metric readers.
func coalesce(m map[string][]any, key string, v any) {
	m[key] = append([]any{v}, m[key]...)
}

func project(list []any) any {
	if len(list) == 1 {
		return list[0]
	}
	out := make([]any, len(list))
	copy(out, list)
	return out
}

// AddResult coalesces v into results[key], newest-first.
func (s *Session) AddResult(key string, v any) { coalesce(s.results, key, v) }

// AddMetric coalesces v into metrics[key], newest-first.
func (s *Session) AddMetric(key string, v any) { coalesce(s.metrics, key, v) }

// AddError records the last error for an action key; overwrites any prior
// entry for the same key.
func (s *Session) AddError(key string, reason error) { s.Errors[key] = reason }

// Result returns the external projection of results[key]: the bare value if
// only one was ever written, otherwise the newest-first []any.
func (s *Session) Result(key string) (any, bool) {
	list, ok := s.results[key]
	if !ok {
		return nil, false
	}
	return project(list), true
}

// Metric returns the external projection of metrics[key].
func (s *Session) Metric(key string) (any, bool) {
	list, ok := s.metrics[key]
	if !ok {
		return nil, false
	}
	return project(list), true
}

// Results returns a snapshot of all result keys projected to their external
// form. Used by Merger and by report writers.
func (s *Session) Results() map[string]any {
	out := make(map[string]any, len(s.results))
	for k, v := range s.results {
		out[k] = project(v)
	}
	return out
}

// Metrics returns a snapshot of all metric keys projected to their external form.
func (s *Session) Metrics() map[string]any {
	out := make(map[string]any, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = project(v)
	}
	return out
}

// Assign sets each key in assigns to its value, overwriting.
func (s *Session) Assign(pairs map[string]any) *Session {
	for k, v := range pairs {
		s.Assigns[k] = v
	}
	return s
}

// UpdateAssign replaces each named key's value with f(current).
func (s *Session) UpdateAssign(pairs map[string]func(any) any) *Session {
	for k, f := range pairs {
		s.Assigns[k] = f(s.Assigns[k])
	}
	return s
}

// Timeout returns config.timeout or DefaultTimeout (10s). Accepts a
// time.Duration or an int/int64/float64 count of milliseconds; any other
// value, including the string "infinity", yields DefaultTimeout.
func (s *Session) Timeout() time.Duration {
	d, ok := toDuration(s.Config["timeout"])
	if !ok {
		return DefaultTimeout
	}
	return d
}

// Name returns config.session_name or the owning scenario's module identifier.
func (s *Session) Name() string {
	if v, ok := s.Config["session_name"]; ok {
		if str, ok := v.(string); ok && str != "" {
			return str
		}
	}
	return s.Scenario.Module
}

func toDuration(v any) (time.Duration, bool) {
	switch t := v.(type) {
	case time.Duration:
		return t, true
	case int:
		return time.Duration(t) * time.Millisecond, true
	case int64:
		return time.Duration(t) * time.Millisecond, true
	case float64:
		return time.Duration(t) * time.Millisecond, true
	case string:
		if t == "infinity" {
			return 0, false
		}
	}
	return 0, false
}

func isInfinite(v any) bool {
	s, ok := v.(string)
	return ok && s == "infinity"
}

// AddAsyncTask records a live fork under name. async_tasks[name] is
// non-empty iff at least one fork under name has not yet been awaited.
func (s *Session) AddAsyncTask(name string, h *Handle) {
	s.asyncTasks[name] = append(s.asyncTasks[name], h)
}

// RemoveAsyncTask deletes one handle from async_tasks[name]; deleting the
// last entry removes the key entirely.
func (s *Session) RemoveAsyncTask(name string, h *Handle) {
	list := s.asyncTasks[name]
	out := make([]*Handle, 0, len(list))
	for _, x := range list {
		if x != h {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		delete(s.asyncTasks, name)
	} else {
		s.asyncTasks[name] = out
	}
}

// HasAsyncTasks reports whether any fork under name is still unawaited.
func (s *Session) HasAsyncTasks(name string) bool {
	return len(s.asyncTasks[name]) > 0
}

func awaitErrorKey(name string) string { return "await:" + name }

// Await joins every handle under name: for each, it waits up to
// Session.Timeout for the child Session, merges the child's results/metrics
// into the parent tagged with name, and removes the handle. If the shared
// deadline expires before a handle resolves, the child is treated as
// terminated with no merge, and errors[await:name] records join_timeout.
// A name with no recorded handles is a no-op. Idempotent when no new forks
// occur between calls, since awaiting removes the handles it consumes.
func (s *Session) Await(ctx context.Context, name string) error {
	handles := s.asyncTasks[name]
	if len(handles) == 0 {
		return nil
	}

	joinCtx, cancel := context.WithTimeout(ctx, s.Timeout())
	defer cancel()

	var joinErr error
	for _, h := range handles {
		select {
		case out := <-h.done:
			if out.err != nil {
				s.AddError(h.key, out.err)
			}
			mergeAsyncChild(s, name, out.session)
		case <-joinCtx.Done():
			joinErr = &JoinTimeoutError{Name: name}
			s.AddError(awaitErrorKey(name), joinErr)
		}
		s.RemoveAsyncTask(name, h)
	}
	return joinErr
}

// AwaitAll is a stable alias for Await, joining each name in order.
func (s *Session) AwaitAll(ctx context.Context, names ...string) error {
	var first error
	for _, n := range names {
		if err := s.Await(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WithResponse awaits name, then invokes callback(session, response) for
// every {async, action, response} tuple merged into results[name]. The
// callback's return value is discarded; the session is unchanged by the loop
// itself beyond whatever callback mutates directly.
func (s *Session) WithResponse(ctx context.Context, name string, callback func(*Session, any)) error {
	if err := s.Await(ctx, name); err != nil {
		return err
	}
	for _, v := range s.results[name] {
		if tag, ok := v.(AsyncTag); ok {
			callback(s, tag.Value)
		}
	}
	return nil
}

// Delay suspends the current scenario for d; no I/O, just a timer.
func (s *Session) Delay(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
