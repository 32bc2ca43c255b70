package cluster

import (
	"context"
	"testing"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

func TestLocalSpawnerSubmit(t *testing.T) {
	engine.RegisterScenario("cluster_test_ping", engine.ScenarioFunc(func(ctx context.Context, s *engine.Session) *engine.Session {
		s.AddResult("ping", "pong")
		return s
	}))

	spawner := NewLocalSpawner()
	outcomes, err := spawner.Submit(context.Background(), engine.WorkItem{
		ScenarioName: "ping",
		Scenario:     "cluster_test_ping",
	}, 3)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("Submit() returned %d outcomes, want 3", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Results["ping"] != "pong" {
			t.Errorf("outcome.Results[ping] = %v, want pong", o.Results["ping"])
		}
	}
}

func TestLocalSpawnerSubmitUnregisteredScenario(t *testing.T) {
	spawner := NewLocalSpawner()
	_, err := spawner.Submit(context.Background(), engine.WorkItem{Scenario: "does_not_exist"}, 1)
	if err == nil {
		t.Fatalf("Submit() error = nil, want error for unregistered scenario")
	}
}
