// Package cluster distributes an Environment's scenario instances across
// one or more stormcast processes. LocalSpawner runs everything in-process;
// RedisSpawner hands instances out over a shared work queue so a fleet of
// stormcast processes can share one environment run. Both implement
// engine.Spawner.
package cluster

import (
	"context"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

// LocalSpawner runs every instance in-process via engine.Worker, with no
// queue at all. It is the default Spawner for single-process runs.
type LocalSpawner struct {
	worker engine.Worker
}

// NewLocalSpawner returns a ready-to-use LocalSpawner.
func NewLocalSpawner() *LocalSpawner { return &LocalSpawner{} }

// Submit runs n instances of item concurrently in the current process.
func (s *LocalSpawner) Submit(ctx context.Context, item engine.WorkItem, n int) ([]engine.SessionOutcome, error) {
	scenario, ok := engine.ResolveScenario(item.Scenario)
	if !ok {
		return nil, unregisteredScenarioError(item.Scenario)
	}
	ref := engine.ScenarioRef{Module: item.Scenario}
	results := s.worker.StartN(ctx, ref, scenario, item.Config, n)
	outcomes := make([]engine.SessionOutcome, len(results))
	for i, r := range results {
		outcomes[i] = engine.ToOutcome(r)
	}
	return outcomes, nil
}
