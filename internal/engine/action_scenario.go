package engine

import (
	"context"
	"fmt"
)

// RunScenarioAction runs another registered scenario as a child of the
// current session: config is the overlay applied on top of the parent's
// config (overlay wins on key collision), the child runs Init then Run to
// completion, and its results/metrics are merged into the parent tagged
// under Name, exactly as an awaited Async fork would be.
type RunScenarioAction struct {
	Name     string
	Scenario string
	Config   map[string]any
}

func (a *RunScenarioAction) Key() string { return "run_scenario " + a.Name }

func (a *RunScenarioAction) run(ctx context.Context, s *Session) error {
	scn, ok := ResolveScenario(a.Scenario)
	if !ok {
		return fmt.Errorf("scenario %q is not registered", a.Scenario)
	}

	child := s.fork(a.Scenario)
	for k, v := range a.Config {
		child.Config[k] = v
	}

	child, initErr := scn.Init(ctx, child)
	if initErr != nil {
		child.AddError("init", initErr)
	}
	child = scn.Run(ctx, child)

	mergeAsyncChild(s, a.Name, child)
	for k, err := range child.Errors {
		s.AddError(a.Name+"/"+k, err)
	}
	return nil
}

// RunScenario builds and runs a RunScenario action: execute the named
// registered scenario to completion as a child, overlaying config on top of
// the parent's, and merge its outcome into results[name]/metrics[name].
func (s *Session) RunScenario(ctx context.Context, name, scenario string, config map[string]any) *Session {
	return RunAction(ctx, s, &RunScenarioAction{Name: name, Scenario: scenario, Config: config})
}
