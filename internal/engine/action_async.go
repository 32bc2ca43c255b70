package engine

import (
	"context"
	"fmt"
	"time"
)

// asyncOutcome carries a forked child's final state back to its parent over
// Handle.done.
type asyncOutcome struct {
	session *Session
	err     error
}

// Handle is a joinable reference to one forked child Session, tracked in
// Session.asyncTasks under the fork's name until Await consumes it.
type Handle struct {
	key  string
	done chan asyncOutcome
}

func spawn(ctx context.Context, parent *Session, module string, fn UserFunc, args ...any) *Handle {
	child := parent.fork(module)
	h := &Handle{key: module, done: make(chan asyncOutcome, 1)}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.done <- asyncOutcome{session: child, err: fmt.Errorf("async %q panicked: %v", module, r)}
			}
		}()
		result := fn(ctx, child, args...)
		if result == nil {
			h.done <- asyncOutcome{session: child, err: fmt.Errorf("async %q returned a nil session", module)}
			return
		}
		h.done <- asyncOutcome{session: result, err: nil}
	}()

	return h
}

// AsyncAction spawns an independent child Session running fn(child, args...)
// and records the resulting handle under Name.
type AsyncAction struct {
	Name string
	Fn   UserFunc
	Args []any
}

func (a *AsyncAction) Key() string { return "async " + a.Name }

func (a *AsyncAction) run(ctx context.Context, s *Session) error {
	if a.Fn == nil {
		return fmt.Errorf("async function %q is not registered", a.Name)
	}
	h := spawn(ctx, s, a.Name, a.Fn, a.Args...)
	s.AddAsyncTask(a.Name, h)
	return nil
}

// Async builds and runs an Async action.
func (s *Session) Async(ctx context.Context, name string, fn UserFunc, args ...any) *Session {
	return RunAction(ctx, s, &AsyncAction{Name: name, Fn: fn, Args: args})
}

// SpreadAsyncAction fans out Rate invocations of Fn spread evenly across
// Interval: inter-start gap = Interval/Rate, first invocation at t=0, last
// at t = Interval*(Rate-1)/Rate. It returns immediately after all have been
// spawned; joining happens via Await(Name).
type SpreadAsyncAction struct {
	Name     string
	Fn       UserFunc
	Rate     int
	Interval time.Duration
	Args     []any
}

func (a *SpreadAsyncAction) Key() string { return "spread " + a.Name }

func (a *SpreadAsyncAction) run(ctx context.Context, s *Session) error {
	if a.Fn == nil {
		return fmt.Errorf("spread function %q is not registered", a.Name)
	}
	if a.Rate <= 0 {
		return fmt.Errorf("spread rate must be positive, got %d", a.Rate)
	}

	gap := time.Duration(0)
	if a.Rate > 1 {
		gap = a.Interval / time.Duration(a.Rate)
	}

	for i := 0; i < a.Rate; i++ {
		if i > 0 {
			timer := time.NewTimer(gap)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
		h := spawn(ctx, s, a.Name, a.Fn, a.Args...)
		s.AddAsyncTask(a.Name, h)
	}
	return nil
}

// CCSpread builds and runs a SpreadAsync action: rate invocations of fn
// evenly spread across interval.
func (s *Session) CCSpread(ctx context.Context, name string, fn UserFunc, rate int, interval time.Duration, args ...any) *Session {
	return RunAction(ctx, s, &SpreadAsyncAction{Name: name, Fn: fn, Rate: rate, Interval: interval, Args: args})
}
