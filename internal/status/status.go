// Package status provides shared status constants and helpers for
// worker/environment execution, used by cmd/stormcast's progress and report
// output to stay consistent between the live UI and the final report.
package status

import "strings"

// WorkerStatus represents the lifecycle of one Worker driving a scenario
// instance to completion.
type WorkerStatus string

const (
	// WorkerQueued indicates the worker has not yet been scheduled.
	WorkerQueued WorkerStatus = "queued"

	// WorkerRunning indicates the scenario is actively executing.
	WorkerRunning WorkerStatus = "running"

	// WorkerCompleted indicates the scenario ran to completion with no
	// fatal error (individual action_error entries do not count).
	WorkerCompleted WorkerStatus = "completed"

	// WorkerFailed indicates a fatal_internal error crashed the worker.
	WorkerFailed WorkerStatus = "failed"

	// WorkerTimeout indicates scenario_timeout fired before completion.
	WorkerTimeout WorkerStatus = "timeout"
)

// EnvironmentStatus represents the lifecycle of one Environment batch.
type EnvironmentStatus string

const (
	// EnvironmentQueued indicates the batch has not yet started.
	EnvironmentQueued EnvironmentStatus = "queued"

	// EnvironmentRunning indicates workers are actively executing.
	EnvironmentRunning EnvironmentStatus = "running"

	// EnvironmentCompleted indicates every worker finished before the
	// batch timeout.
	EnvironmentCompleted EnvironmentStatus = "completed"

	// EnvironmentShutdown indicates environment_shutdown fired: the batch
	// timeout elapsed with workers still pending, and they were force
	// terminated.
	EnvironmentShutdown EnvironmentStatus = "shutdown"
)

var terminalWorkerStatuses = map[string]bool{
	string(WorkerCompleted): true,
	string(WorkerFailed):    true,
	string(WorkerTimeout):   true,
}

var activeWorkerStatuses = map[string]bool{
	string(WorkerQueued):  true,
	string(WorkerRunning): true,
}

// IsTerminal reports whether a worker status string indicates execution has
// ended (case-insensitive).
func IsTerminal(status string) bool {
	return terminalWorkerStatuses[strings.ToLower(status)]
}

// IsActive reports whether a worker status string indicates execution is
// still in progress (case-insensitive).
func IsActive(status string) bool {
	return activeWorkerStatuses[strings.ToLower(status)]
}

// IsSuccess determines whether a worker's terminal outcome counts as a
// pass: completed status, no fatal error, and no error message recorded
// against it. action_error entries in a session's own Errors map are not
// inputs here — per the uniform failure policy they never fail the
// scenario, only the report's per-action breakdown reflects them.
func IsSuccess(status string, fatalErr string) bool {
	if fatalErr != "" {
		return false
	}
	switch strings.ToLower(status) {
	case string(WorkerFailed), string(WorkerTimeout):
		return false
	case string(WorkerCompleted):
		return true
	default:
		return false
	}
}

// IsEnvironmentSuccess reports whether a batch finished cleanly: every
// worker reached a terminal state other than shutdown/failed/timeout.
func IsEnvironmentSuccess(envStatus string, failedWorkers int) bool {
	if strings.ToLower(envStatus) != string(EnvironmentCompleted) {
		return false
	}
	return failedWorkers == 0
}

// Icon returns a single-character glyph for a worker status, used by
// internal/ui's progress and summary output.
func Icon(status string) string {
	switch strings.ToLower(status) {
	case string(WorkerQueued):
		return "⏳"
	case string(WorkerRunning):
		return "▶"
	case string(WorkerCompleted):
		return "✓"
	case string(WorkerFailed):
		return "✗"
	case string(WorkerTimeout):
		return "⏱"
	default:
		return "●"
	}
}

// Category returns a styling bucket for a worker status, consumed by
// internal/ui/styles.go to pick a lipgloss color.
func Category(status string) string {
	switch strings.ToLower(status) {
	case string(WorkerQueued):
		return "dim"
	case string(WorkerRunning):
		return "info"
	case string(WorkerCompleted):
		return "success"
	case string(WorkerFailed):
		return "error"
	case string(WorkerTimeout):
		return "warning"
	default:
		return "dim"
	}
}
