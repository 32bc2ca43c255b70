package engine

import (
	"context"

	"go.opentelemetry.io/otel/codes"
)

// Action is a tagged command value the engine can execute against a
// Session. Every variant (action_http.go, action_ws.go, action_func.go,
// action_async.go, action_loop.go, action_scenario.go) implements run, which
// mutates the session in place and may suspend the calling goroutine on I/O,
// a timer, or a join.
//
// Key returns the action's structural identity: the map key used for
// results/metrics/errors. Two actions are "the same key" iff they report the
// same Key() ("HTTP GET /a" and "HTTP GET /b" are distinct keys).
type Action interface {
	Key() string
	run(ctx context.Context, s *Session) error
}

// RunAction executes a against s under one uniform failure policy: on error,
// records session.Errors[a.Key()] and logs at error level; on success, logs
// at debug level. Either way the scenario
// is not aborted — RunAction always returns s for chaining.
func RunAction(ctx context.Context, s *Session, a Action) *Session {
	spanCtx, span := startActionSpan(ctx, a.Key())
	err := a.run(spanCtx, s)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		s.AddError(a.Key(), &ActionError{Reason: err})
		logActionError(s.ID, a.Key(), err)
		return s
	}
	span.End()
	logActionOK(s.ID, a.Key())
	return s
}
