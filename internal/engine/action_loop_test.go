package engine

import (
	"context"
	"testing"
	"time"
)

func TestLoopRunsUntilDurationElapses(t *testing.T) {
	s := NewSession(ScenarioRef{Module: "test"}, nil)
	iterations := 0

	s = s.Loop(context.Background(), "tick", func(ctx context.Context, s *Session, args ...any) *Session {
		iterations++
		s.AddMetric("ticks", iterations)
		return s
	}, 50*time.Millisecond)

	if iterations < 2 {
		t.Errorf("expected at least 2 iterations in 50ms, got %d", iterations)
	}
}

func TestLoopIterationPanicRecordsErrorAndContinues(t *testing.T) {
	s := NewSession(ScenarioRef{Module: "test"}, nil)
	calls := 0

	s = s.Loop(context.Background(), "flaky", func(ctx context.Context, s *Session, args ...any) *Session {
		calls++
		if calls == 1 {
			panic("first iteration explodes")
		}
		return s
	}, 40*time.Millisecond)

	if s.Errors["loop flaky[0]"] == nil {
		t.Error("expected the first iteration's panic recorded under loop flaky[0]")
	}
	if calls < 2 {
		t.Errorf("expected the loop to continue past a panicking iteration, got %d calls", calls)
	}
}

func TestLoopRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSession(ScenarioRef{Module: "test"}, nil)
	iterations := 0

	done := make(chan struct{})
	go func() {
		s.Loop(ctx, "tick", func(ctx context.Context, s *Session, args ...any) *Session {
			iterations++
			return s
		}, time.Hour)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after context cancellation")
	}
}
