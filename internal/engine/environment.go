package engine

import (
	"context"
	"sync"
	"time"
)

// ScenarioSpec is one scenario x concurrency x config triple within a batch:
// run Scenario Concurrency times, each against default_config overlaid by
// Config (Config wins on key collision).
type ScenarioSpec struct {
	Name        string
	Scenario    string
	Concurrency int
	Config      map[string]any
}

// RunSpec describes one Environment batch: the scenarios to run and the
// config every session starts from before its own overlay is applied.
type RunSpec struct {
	Environment   string
	DefaultConfig map[string]any
	Scenarios     []ScenarioSpec
	// Timeout bounds the whole batch. When it is zero, DefaultConfig's
	// "environment_timeout" (a time.Duration or a millisecond count) is
	// used instead; if that is absent or "infinity", the batch is unbounded.
	Timeout time.Duration
}

// Results is the aggregate produced by one Environment.Run: every scenario
// name's sessions, each projected to its external result/metric view, plus
// batch-level timing.
type Results struct {
	Environment string
	StartMS     int64
	EndMS       int64
	DurationMS  int64
	Sessions    map[string][]SessionOutcome
}

// SessionOutcome is one worker's terminal state folded into Results. It is
// also the wire format RedisSpawner ships across a results queue, hence the
// json tags.
type SessionOutcome struct {
	SessionID string            `json:"session_id"`
	Results   map[string]any    `json:"results"`
	Metrics   map[string]any    `json:"metrics"`
	Errors    map[string]string `json:"errors"`
	Err       string            `json:"err,omitempty"`
}

// Environment runs a RunSpec's batch of scenario instances and aggregates
// their outcomes, enforcing a single global timeout across the whole batch
// on top of each Worker's own per-scenario timeout. With no Spawner set it
// drives Worker directly in-process; cmd/stormcast sets one from
// internal/cluster to distribute a batch across a fleet.
type Environment struct {
	worker  Worker
	Spawner Spawner

	// OnProgress, if set, is called from Run's own goroutines each time one
	// ScenarioSpec in the batch finishes, reporting how many of the batch's
	// scenarios (not instances) have completed so far. cmd/stormcast uses it
	// to drive a progress bar while a batch is in flight.
	OnProgress func(done, total int)
}

// NewEnvironment returns a ready-to-use, single-process Environment.
func NewEnvironment() *Environment { return &Environment{} }

// NewDistributedEnvironment returns an Environment that submits its scenario
// instances through spawner instead of running them in-process.
func NewDistributedEnvironment(spawner Spawner) *Environment {
	return &Environment{Spawner: spawner}
}

// Run executes every ScenarioSpec in spec concurrently and blocks until all
// have finished or the batch timeout forces a shutdown, whichever comes
// first. At the deadline the batch context is cancelled, the shutdown is
// logged, and Run returns the outcomes collected so far without awaiting
// the stragglers.
func (e *Environment) Run(ctx context.Context, spec RunSpec) Results {
	start := time.Now()

	timeout := spec.Timeout
	if timeout == 0 {
		if d, ok := toDuration(spec.DefaultConfig["environment_timeout"]); ok {
			timeout = d
		}
	}
	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var mu sync.Mutex
	sessions := make(map[string][]SessionOutcome, len(spec.Scenarios))
	var wg sync.WaitGroup
	pending := 0
	done := 0
	total := len(spec.Scenarios)

	for _, sc := range spec.Scenarios {
		scenario, ok := ResolveScenario(sc.Scenario)
		if !ok {
			logScenarioExcluded(sc.Name, "scenario not registered: "+sc.Scenario)
			mu.Lock()
			done++
			if e.OnProgress != nil {
				e.OnProgress(done, total)
			}
			mu.Unlock()
			continue
		}

		config := overlayConfig(spec.DefaultConfig, sc.Config)
		n := sc.Concurrency
		if n <= 0 {
			n = 1
		}
		pending += n

		wg.Add(1)
		go func(sc ScenarioSpec, scenario Scenario, config map[string]any, n int) {
			defer wg.Done()
			outcomes := e.runScenario(runCtx, sc, scenario, config, n)
			mu.Lock()
			if len(outcomes) > 0 {
				sessions[sc.Name] = append(sessions[sc.Name], outcomes...)
			}
			done++
			if e.OnProgress != nil {
				e.OnProgress(done, total)
			}
			mu.Unlock()
		}(sc, scenario, config, n)
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-runCtx.Done():
		logEnvironmentShutdown(spec.Environment, pending)
	}

	end := time.Now()
	return Results{
		Environment: spec.Environment,
		StartMS:     start.UnixMilli(),
		EndMS:       end.UnixMilli(),
		DurationMS:  end.Sub(start).Milliseconds(),
		Sessions:    sessions,
	}
}

// runScenario executes n instances of scenario, either in-process via
// Worker or, if e.Spawner is set, through the fleet. Only outcomes from
// sessions that actually completed are returned; a scenario_timeout, a
// fatal_internal crash, or a Spawner-level failure drops that slot from the
// batch's results rather than recording it as an errored outcome.
func (e *Environment) runScenario(ctx context.Context, sc ScenarioSpec, scenario Scenario, config map[string]any, n int) []SessionOutcome {
	var outcomes []SessionOutcome
	if e.Spawner != nil {
		submitted, err := e.Spawner.Submit(ctx, WorkItem{ScenarioName: sc.Name, Scenario: sc.Scenario, Config: config}, n)
		if err != nil {
			logScenarioExcluded(sc.Name, err.Error())
			return nil
		}
		outcomes = submitted
	} else {
		results := e.worker.StartN(ctx, ScenarioRef{Module: sc.Scenario}, scenario, config, n)
		outcomes = make([]SessionOutcome, len(results))
		for i, r := range results {
			outcomes[i] = ToOutcome(r)
		}
	}
	return excludeUnfinished(sc.Name, outcomes)
}

// excludeUnfinished drops any outcome carrying a terminal error, logging
// each exclusion under name. A worker-level error means its Session never
// finished, so only successfully completed Sessions make it into Results.
func excludeUnfinished(name string, outcomes []SessionOutcome) []SessionOutcome {
	kept := make([]SessionOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != "" {
			logScenarioExcluded(name, o.Err)
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// overlayConfig returns a new map with override's entries layered on top of
// base's; override wins on key collision. Neither input is mutated.
func overlayConfig(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ToOutcome projects a WorkerResult to its externally-serializable
// SessionOutcome form. Exported for internal/cluster, which ships outcomes
// across a Redis results queue rather than collecting WorkerResults
// directly.
func ToOutcome(r WorkerResult) SessionOutcome {
	out := SessionOutcome{
		SessionID: r.Session.ID,
		Results:   r.Session.Results(),
		Metrics:   r.Session.Metrics(),
		Errors:    make(map[string]string, len(r.Session.Errors)),
	}
	for k, err := range r.Session.Errors {
		out.Errors[k] = err.Error()
	}
	if r.Err != nil {
		out.Err = r.Err.Error()
	}
	return out
}
