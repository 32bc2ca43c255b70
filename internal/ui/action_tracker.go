// Package ui provides terminal UI components using Charm libraries.
package ui

import (
	"fmt"
	"sync"
)

// ActionTracker tracks a running scenario's action progress and prints
// completed actions as a growing list. It detects completions by watching
// CompletedActions count and captures the CurrentAction key just before it
// increments.
type ActionTracker struct {
	completedActions []string

	lastCompletedCount int
	lastCurrentAction  string

	// verbose enables additional detail like duration per action.
	verbose bool

	mu sync.Mutex
}

// NewActionTracker creates a new action tracker.
//
// Parameters:
//   - verbose: If true, shows additional detail like duration per action
func NewActionTracker(verbose bool) *ActionTracker {
	return &ActionTracker{
		completedActions: make([]string, 0),
		verbose:          verbose,
	}
}

// ActionStatus contains the status information for one action update.
type ActionStatus struct {
	// Status is the worker's current status (queued, running, completed, failed, timeout).
	Status string

	// CurrentAction is the key of the action currently executing.
	CurrentAction string

	// CompletedActions is the number of actions completed so far.
	CompletedActions int

	// TotalActions is the total number of actions, when known ahead of time.
	TotalActions int

	// Duration is the elapsed execution duration string.
	Duration string
}

// Update processes a status update and prints any newly completed actions.
func (t *ActionTracker) Update(status *ActionStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if status.CompletedActions > t.lastCompletedCount {
		if t.lastCurrentAction != "" {
			t.completedActions = append(t.completedActions, t.lastCurrentAction)
			t.printCompletedAction(t.lastCurrentAction)
		}
		t.lastCompletedCount = status.CompletedActions
	}

	t.lastCurrentAction = status.CurrentAction
	t.printCurrentStatus(status)
}

func (t *ActionTracker) printCompletedAction(actionKey string) {
	clearLine()
	fmt.Println(SuccessStyle.Render("✓ " + actionKey))
}

func (t *ActionTracker) printCurrentStatus(status *ActionStatus) {
	clearLine()

	icon := getStyledStatusIcon(status.Status)
	statusLine := fmt.Sprintf("%s %s", icon, status.CurrentAction)

	if status.TotalActions > 0 {
		statusLine += DimStyle.Render(fmt.Sprintf(" [%d/%d actions]", status.CompletedActions+1, status.TotalActions))
	}

	if t.verbose && status.Duration != "" {
		statusLine += DimStyle.Render(fmt.Sprintf(" (%s)", status.Duration))
	}

	fmt.Print(statusLine)
}

// Finish clears the status line. Call when the worker reaches a terminal
// state to ensure clean output before the next line is printed.
func (t *ActionTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clearLine()
}

// GetCompletedActions returns a copy of the completed action keys, in order.
func (t *ActionTracker) GetCompletedActions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]string, len(t.completedActions))
	copy(result, t.completedActions)
	return result
}
