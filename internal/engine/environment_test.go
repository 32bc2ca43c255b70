package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEnvironmentRunAggregatesMultipleScenarios(t *testing.T) {
	RegisterScenario("engine_test_env_a", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddResult("ok", true)
		return s
	}))
	RegisterScenario("engine_test_env_b", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddResult("ok", true)
		return s
	}))

	env := NewEnvironment()
	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "a", Scenario: "engine_test_env_a", Concurrency: 3},
			{Name: "b", Scenario: "engine_test_env_b", Concurrency: 2},
		},
	})

	if len(results.Sessions["a"]) != 3 {
		t.Errorf("expected 3 outcomes for scenario a, got %d", len(results.Sessions["a"]))
	}
	if len(results.Sessions["b"]) != 2 {
		t.Errorf("expected 2 outcomes for scenario b, got %d", len(results.Sessions["b"]))
	}
	if results.DurationMS < 0 {
		t.Error("expected a non-negative duration")
	}
}

func TestEnvironmentRunOverlaysConfigPerScenario(t *testing.T) {
	RegisterScenario("engine_test_env_overlay", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddResult("rate", s.Config["rate"])
		return s
	}))

	env := NewEnvironment()
	results := env.Run(context.Background(), RunSpec{
		Environment:   "test",
		DefaultConfig: map[string]any{"rate": 1},
		Scenarios: []ScenarioSpec{
			{Name: "solo", Scenario: "engine_test_env_overlay", Concurrency: 1, Config: map[string]any{"rate": 9}},
		},
	})

	outcomes := results.Sessions["solo"]
	if len(outcomes) != 1 || outcomes[0].Results["rate"] != 9 {
		t.Errorf("expected scenario-level config to win, got %#v", outcomes)
	}
}

func TestEnvironmentRunExcludesUnregisteredScenario(t *testing.T) {
	env := NewEnvironment()
	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "ghost", Scenario: "does_not_exist_anywhere", Concurrency: 1},
		},
	})

	if outcomes, ok := results.Sessions["ghost"]; ok {
		t.Fatalf("expected no session recorded for an unregistered scenario, got %#v", outcomes)
	}
}

func TestEnvironmentRunExcludesTimedOutScenario(t *testing.T) {
	RegisterScenario("engine_test_env_timeout", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
		return s
	}))

	env := NewEnvironment()
	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "slow", Scenario: "engine_test_env_timeout", Concurrency: 1,
				Config: map[string]any{"scenario_timeout": 20 * time.Millisecond}},
		},
	})

	if outcomes, ok := results.Sessions["slow"]; ok {
		t.Fatalf("expected a scenario_timeout session excluded from Results.Sessions, got %#v", outcomes)
	}
}

func TestEnvironmentRunUsesSpawnerWhenConfigured(t *testing.T) {
	spawner := &fakeSpawner{}
	env := NewDistributedEnvironment(spawner)

	RegisterScenario("engine_test_env_spawned", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		return s
	}))

	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "fleet", Scenario: "engine_test_env_spawned", Concurrency: 4},
		},
	})

	if spawner.calls != 1 {
		t.Fatalf("expected exactly one Submit call, got %d", spawner.calls)
	}
	if spawner.lastN != 4 {
		t.Errorf("expected Submit to be asked for 4 instances, got %d", spawner.lastN)
	}
	if len(results.Sessions["fleet"]) != 4 {
		t.Errorf("expected 4 outcomes from the spawner, got %d", len(results.Sessions["fleet"]))
	}
}

func TestEnvironmentRunExcludesScenarioOnSpawnerError(t *testing.T) {
	spawner := &fakeSpawner{err: errors.New("fleet unreachable")}
	env := NewDistributedEnvironment(spawner)

	RegisterScenario("engine_test_env_spawn_fail", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		return s
	}))

	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "fleet", Scenario: "engine_test_env_spawn_fail", Concurrency: 1},
		},
	})

	if outcomes, ok := results.Sessions["fleet"]; ok {
		t.Errorf("expected no session recorded when the spawner itself fails, got %#v", outcomes)
	}
}

func TestEnvironmentRunExcludesSpawnerOutcomeCarryingError(t *testing.T) {
	spawner := &fakeSpawner{failOutcome: true}
	env := NewDistributedEnvironment(spawner)

	RegisterScenario("engine_test_env_spawn_outcome_fail", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		return s
	}))

	results := env.Run(context.Background(), RunSpec{
		Environment: "test",
		Scenarios: []ScenarioSpec{
			{Name: "fleet", Scenario: "engine_test_env_spawn_outcome_fail", Concurrency: 2},
		},
	})

	if outcomes, ok := results.Sessions["fleet"]; ok {
		t.Errorf("expected the errored outcome dropped, got %#v", outcomes)
	}
}

func TestEnvironmentRunStopsAtBatchTimeout(t *testing.T) {
	RegisterScenario("engine_test_env_slow", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
		return s
	}))

	env := NewEnvironment()
	start := time.Now()
	env.Run(context.Background(), RunSpec{
		Environment: "test",
		Timeout:     30 * time.Millisecond,
		Scenarios: []ScenarioSpec{
			{Name: "slow", Scenario: "engine_test_env_slow", Concurrency: 1},
		},
	})

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected Run to respect the batch timeout, took %s", elapsed)
	}
}

type fakeSpawner struct {
	calls       int
	lastN       int
	err         error
	failOutcome bool
}

func (f *fakeSpawner) Submit(ctx context.Context, item WorkItem, n int) ([]SessionOutcome, error) {
	f.calls++
	f.lastN = n
	if f.err != nil {
		return nil, f.err
	}
	outcomes := make([]SessionOutcome, n)
	for i := range outcomes {
		if f.failOutcome {
			outcomes[i] = SessionOutcome{Err: "worker slot failed"}
			continue
		}
		outcomes[i] = SessionOutcome{SessionID: item.ScenarioName}
	}
	return outcomes, nil
}
