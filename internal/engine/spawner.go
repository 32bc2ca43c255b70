package engine

import "context"

// WorkItem is one scenario instance to run, independent of which process
// in a fleet ends up running it.
type WorkItem struct {
	ScenarioName string
	Scenario     string
	Config       map[string]any
}

// Spawner hands out WorkItems to be run and collects their outcomes.
// Environment.Run uses it instead of driving Worker directly whenever one
// is configured, so a single environment batch can be distributed across a
// fleet of stormcast processes (see internal/cluster) without Environment
// knowing how.
type Spawner interface {
	Submit(ctx context.Context, item WorkItem, n int) ([]SessionOutcome, error)
}
