// Package engine implements the session execution engine: the scheduler and
// state container that runs a scripted sequence of actions for one scenario
// instance, forks and joins asynchronous sub-tasks, and merges their results
// back into the parent.
package engine

import "fmt"

// ActionError wraps the reason an Action's Run returned {error, reason}.
// Recorded under Session.Errors[actionKey]; it never aborts the scenario.
type ActionError struct {
	Reason error
}

func (e *ActionError) Error() string { return e.Reason.Error() }
func (e *ActionError) Unwrap() error { return e.Reason }

// JoinTimeoutError indicates a forked child did not complete before the
// session's await deadline. The child's goroutine is not stopped: its
// eventual outcome is discarded and no merge is performed.
type JoinTimeoutError struct {
	Name string
}

func (e *JoinTimeoutError) Error() string {
	return fmt.Sprintf("join timeout awaiting %q", e.Name)
}

// ScenarioTimeoutError indicates a Worker's scenario exceeded config.scenario_timeout.
// The session is excluded from Results.Sessions.
type ScenarioTimeoutError struct {
	SessionID string
}

func (e *ScenarioTimeoutError) Error() string {
	return fmt.Sprintf("scenario timeout for session %q", e.SessionID)
}

// EnvironmentShutdownError indicates a cross-batch forced termination:
// stragglers beyond the environment's max timeout were killed.
type EnvironmentShutdownError struct {
	Pending int
}

func (e *EnvironmentShutdownError) Error() string {
	return fmt.Sprintf("environment shutdown with %d worker(s) still pending", e.Pending)
}

// FatalInternalError wraps a violated invariant, e.g. a double-merge of the
// same child. It crashes the offending worker; the Environment records it
// and continues with its peers.
type FatalInternalError struct {
	SessionID string
	Cause     any
}

func (e *FatalInternalError) Error() string {
	return fmt.Sprintf("fatal internal error in session %q: %v", e.SessionID, e.Cause)
}

// panicError formats a recovered panic value into an error attributed to name.
func panicError(name string, r any) error {
	return fmt.Errorf("%q panicked: %v", name, r)
}
