package engine

import (
	"context"
	"testing"
)

func TestRunScenarioMergesChildIntoParent(t *testing.T) {
	RegisterScenario("engine_test_child", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddResult("status", "ok")
		return s
	}))

	s := NewSession(ScenarioRef{Module: "parent"}, nil)
	s = s.RunScenario(context.Background(), "child_run", "engine_test_child", nil)

	v, ok := s.Result("child_run")
	if !ok {
		t.Fatal("expected a merged result under 'child_run'")
	}
	tag, ok := v.(AsyncTag)
	if !ok || tag.Action != "status" || tag.Value != "ok" {
		t.Errorf("unexpected merged value: %#v", v)
	}
}

func TestRunScenarioOverlaysConfigOntoChild(t *testing.T) {
	RegisterScenario("engine_test_config_echo", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddResult("cart_size", s.Config["cart_size"])
		return s
	}))

	s := NewSession(ScenarioRef{Module: "parent"}, map[string]any{"cart_size": 1})
	s = s.RunScenario(context.Background(), "checkout", "engine_test_config_echo", map[string]any{"cart_size": 5})

	v, _ := s.Result("checkout")
	tag := v.(AsyncTag)
	if tag.Value != 5 {
		t.Errorf("expected the overlay config to win, got %v", tag.Value)
	}
}

func TestRunScenarioPrefixesChildErrors(t *testing.T) {
	RegisterScenario("engine_test_failing_child", ScenarioFunc(func(ctx context.Context, s *Session) *Session {
		s.AddError("step", errBoom{})
		return s
	}))

	s := NewSession(ScenarioRef{Module: "parent"}, nil)
	s = s.RunScenario(context.Background(), "sub", "engine_test_failing_child", nil)

	if s.Errors["sub/step"] == nil {
		t.Error("expected the child's error prefixed with the run name")
	}
}

func TestRunScenarioUnregisteredErrors(t *testing.T) {
	s := NewSession(ScenarioRef{Module: "parent"}, nil)
	s = s.RunScenario(context.Background(), "sub", "does_not_exist", nil)

	if s.Errors["run_scenario sub"] == nil {
		t.Error("expected an error for an unregistered scenario")
	}
}

func TestRunScenarioRecordsChildInitErrorAndStillRuns(t *testing.T) {
	RegisterScenario("engine_test_failing_init_child", failingInitScenario{})

	s := NewSession(ScenarioRef{Module: "parent"}, nil)
	s = s.RunScenario(context.Background(), "sub", "engine_test_failing_init_child", nil)

	if s.Errors["sub/init"] == nil {
		t.Error("expected the child's init error recorded under 'sub/init'")
	}
	v, ok := s.Result("sub")
	if !ok {
		t.Fatal("expected Run to still execute and merge a result despite the init failure")
	}
	tag := v.(AsyncTag)
	if tag.Action != "status" || tag.Value != "ran anyway" {
		t.Errorf("unexpected merged value: %#v", v)
	}
}

type failingInitScenario struct{}

func (failingInitScenario) Init(ctx context.Context, s *Session) (*Session, error) {
	return s, errBoom{}
}

func (failingInitScenario) Run(ctx context.Context, s *Session) *Session {
	s.AddResult("status", "ran anyway")
	return s
}
