package engine

import (
	"context"
	"fmt"
)

// UserFunc is a registered callback a FunctionAction invokes as
// f(ctx, session, args...). It must return the (possibly mutated) session.
// A panic inside f is recovered and mapped to an error result rather than
// crashing the worker.
type UserFunc func(ctx context.Context, s *Session, args ...any) *Session

// FunctionAction invokes a user function by name with the given args.
type FunctionAction struct {
	Name string
	Fn   UserFunc
	Args []any
}

func (a *FunctionAction) Key() string { return "call " + a.Name }

func (a *FunctionAction) run(ctx context.Context, s *Session) (err error) {
	if a.Fn == nil {
		return fmt.Errorf("function %q is not registered", a.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("function %q panicked: %v", a.Name, r)
		}
	}()

	result := a.Fn(ctx, s, a.Args...)
	if result == nil {
		return fmt.Errorf("function %q returned a nil session", a.Name)
	}
	*s = *result
	return nil
}

// Call builds and runs a Function action.
func (s *Session) Call(ctx context.Context, name string, fn UserFunc, args ...any) *Session {
	return RunAction(ctx, s, &FunctionAction{Name: name, Fn: fn, Args: args})
}
