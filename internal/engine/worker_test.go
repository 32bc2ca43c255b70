package engine

import (
	"context"
	"testing"
	"time"
)

func TestWorkerStartRunsInitThenRun(t *testing.T) {
	order := []string{}
	scenario := orderedScenario{
		init: func(ctx context.Context, s *Session) (*Session, error) {
			order = append(order, "init")
			return s, nil
		},
		run: func(ctx context.Context, s *Session) *Session {
			order = append(order, "run")
			s.AddResult("done", true)
			return s
		},
	}

	result := Worker{}.Start(context.Background(), ScenarioRef{Module: "test"}, scenario, nil)

	if result.Err != nil {
		t.Fatalf("Start() error = %v", result.Err)
	}
	if len(order) != 2 || order[0] != "init" || order[1] != "run" {
		t.Errorf("expected init then run, got %v", order)
	}
	if v, _ := result.Session.Result("done"); v != true {
		t.Errorf("unexpected session result: %v", v)
	}
}

func TestWorkerStartRecordsInitError(t *testing.T) {
	ranRun := false
	scenario := orderedScenario{
		init: func(ctx context.Context, s *Session) (*Session, error) {
			return s, errBoom{}
		},
		run: func(ctx context.Context, s *Session) *Session {
			ranRun = true
			return s
		},
	}

	result := Worker{}.Start(context.Background(), ScenarioRef{Module: "test"}, scenario, nil)

	if result.Err != nil {
		t.Fatalf("Start() error = %v, want nil (init errors don't abort the scenario)", result.Err)
	}
	if result.Session.Errors["init"] == nil {
		t.Error("expected the init error recorded on the session")
	}
	if !ranRun {
		t.Error("expected Run to still execute after a failed Init")
	}
}

func TestWorkerStartTimesOut(t *testing.T) {
	scenario := orderedScenario{
		run: func(ctx context.Context, s *Session) *Session {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
			return s
		},
	}

	result := Worker{}.Start(context.Background(), ScenarioRef{Module: "test"},
		scenario, map[string]any{"scenario_timeout": 20 * time.Millisecond})

	if result.Err == nil {
		t.Fatal("expected a scenario timeout error")
	}
	if _, ok := result.Err.(*ScenarioTimeoutError); !ok {
		t.Errorf("expected *ScenarioTimeoutError, got %T", result.Err)
	}
}

func TestWorkerStartRecoversPanic(t *testing.T) {
	scenario := orderedScenario{
		run: func(ctx context.Context, s *Session) *Session {
			panic("scenario exploded")
		},
	}

	result := Worker{}.Start(context.Background(), ScenarioRef{Module: "test"}, scenario, nil)

	if result.Err == nil {
		t.Fatal("expected a fatal internal error")
	}
	if _, ok := result.Err.(*FatalInternalError); !ok {
		t.Errorf("expected *FatalInternalError, got %T", result.Err)
	}
}

func TestWorkerStartNRunsConcurrently(t *testing.T) {
	scenario := orderedScenario{
		run: func(ctx context.Context, s *Session) *Session {
			s.AddResult("id", s.ID)
			return s
		},
	}

	results := Worker{}.StartN(context.Background(), ScenarioRef{Module: "test"}, scenario, nil, 5)

	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("unexpected error: %v", r.Err)
		}
		seen[r.Session.ID] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct session IDs, got %d", len(seen))
	}
}

type orderedScenario struct {
	init func(ctx context.Context, s *Session) (*Session, error)
	run  func(ctx context.Context, s *Session) *Session
}

func (o orderedScenario) Init(ctx context.Context, s *Session) (*Session, error) {
	if o.init != nil {
		return o.init(ctx, s)
	}
	return s, nil
}

func (o orderedScenario) Run(ctx context.Context, s *Session) *Session {
	return o.run(ctx, s)
}
