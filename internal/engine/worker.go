package engine

import (
	"context"
	"time"
)

// WorkerResult is the terminal outcome of one scenario instance run to
// completion (or to timeout/fatal failure) by Worker.Start.
type WorkerResult struct {
	Session *Session
	Err     error
}

// Worker drives exactly one Scenario through Init and Run against a fresh
// Session, enforcing config.scenario_timeout and converting a panic inside
// the scenario into a FatalInternalError rather than crashing the caller.
// Environment runs one Start per scenario x concurrency slot, directly via
// StartN or through the spawners in internal/cluster.
type Worker struct{}

// Start runs scenario to completion (or scenario_timeout) against a new
// Session built from config, returning the final session and any terminal
// error. It never panics: a recovered panic is reported as
// FatalInternalError.
func (Worker) Start(ctx context.Context, ref ScenarioRef, scenario Scenario, config map[string]any) WorkerResult {
	s := NewSession(ref, config)

	timeout := scenarioTimeout(config, s.Timeout())
	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan WorkerResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logFatal(s.ID, r)
				done <- WorkerResult{Session: s, Err: &FatalInternalError{SessionID: s.ID, Cause: r}}
			}
		}()
		var initErr error
		s, initErr = scenario.Init(runCtx, s)
		if initErr != nil {
			s.AddError("init", initErr)
		}
		s = scenario.Run(runCtx, s)
		done <- WorkerResult{Session: s}
	}()

	select {
	case result := <-done:
		return result
	case <-runCtx.Done():
		return WorkerResult{Session: s, Err: &ScenarioTimeoutError{SessionID: s.ID}}
	}
}

// StartN runs n concurrent independent instances of scenario, each with its
// own Session built from the same config, and collects every WorkerResult.
// Environment uses this for one scenario's concurrency fan-out within a
// batch.
func (w Worker) StartN(ctx context.Context, ref ScenarioRef, scenario Scenario, config map[string]any, n int) []WorkerResult {
	results := make([]WorkerResult, n)
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			results[i] = w.Start(ctx, ref, scenario, config)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}
	return results
}

func scenarioTimeout(config map[string]any, fallback time.Duration) time.Duration {
	if v, ok := config["scenario_timeout"]; ok {
		if isInfinite(v) {
			return 0
		}
		if d, ok := toDuration(v); ok {
			return d
		}
	}
	return fallback
}
