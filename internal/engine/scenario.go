package engine

import "context"

// Scenario is a registered, runnable script: Init prepares a fresh Session
// (assigning config-derived state before the run proper starts), and Run
// executes the scripted sequence of actions to completion and returns the
// final session. Both receive ctx so they can honor cancellation/timeout the
// same way individual actions do.
//
// Init may fail: on error, the Session it returns is still used for Run —
// the scenario is never aborted over an init failure — but the error is
// recorded against the session so a reporter can tell init never completed
// cleanly.
type Scenario interface {
	Init(ctx context.Context, s *Session) (*Session, error)
	Run(ctx context.Context, s *Session) *Session
}

// ScenarioFunc adapts a plain run function to the Scenario interface for
// scenarios with no separate init step; Init is a no-op passthrough.
type ScenarioFunc func(ctx context.Context, s *Session) *Session

func (f ScenarioFunc) Init(ctx context.Context, s *Session) (*Session, error) { return s, nil }
func (f ScenarioFunc) Run(ctx context.Context, s *Session) *Session           { return f(ctx, s) }

// registry is the process-wide scenario name -> Scenario lookup populated by
// RegisterScenario, consulted by config-driven environment descriptors that
// name scenarios by string rather than linking them in directly.
var registry = make(map[string]Scenario)

// RegisterScenario makes scenario available under name to descriptor-driven
// environment runs (internal/config) and to RunScenarioAction by name.
func RegisterScenario(name string, scenario Scenario) {
	registry[name] = scenario
}

// ResolveScenario looks up a scenario registered with RegisterScenario.
func ResolveScenario(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}
