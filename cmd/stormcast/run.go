package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "github.com/stormcast-dev/stormcast/examples/scenarios"
	"github.com/stormcast-dev/stormcast/internal/cluster"
	"github.com/stormcast-dev/stormcast/internal/config"
	"github.com/stormcast-dev/stormcast/internal/engine"
	"github.com/stormcast-dev/stormcast/internal/report"
	"github.com/stormcast-dev/stormcast/internal/status"
	"github.com/stormcast-dev/stormcast/internal/transport"
	"github.com/stormcast-dev/stormcast/internal/ui"
	"github.com/stormcast-dev/stormcast/internal/util"
)

var (
	runOutputJSON   string
	runOutputCSV    string
	runRedisAddr    string
	runRedisPrefix  string
	runDrain        bool
	runOtelEndpoint string
)

var runCmd = &cobra.Command{
	Use:   "run <descriptor.yaml>",
	Short: "Run an environment descriptor's scenarios",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvironment,
}

func init() {
	runCmd.Flags().StringVar(&runOutputJSON, "out", "", "Write the full JSON report to this path (default: <environment>-report.json)")
	runCmd.Flags().StringVar(&runOutputCSV, "csv", "", "Write a flat CSV summary to this path")
	runCmd.Flags().StringVar(&runRedisAddr, "redis", "", "Redis address for distributed execution (e.g. localhost:6379)")
	runCmd.Flags().StringVar(&runRedisPrefix, "redis-prefix", "stormcast:", "Key prefix for the Redis work queue")
	runCmd.Flags().BoolVar(&runDrain, "drain", false, "Run as a worker draining the Redis queue instead of submitting a batch")
	runCmd.Flags().StringVar(&runOtelEndpoint, "otel-endpoint", "", "OTLP/HTTP endpoint for action tracing (disabled if empty)")
}

func runEnvironment(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runOtelEndpoint != "" {
		shutdown, err := engine.InitTracing(ctx, engine.TraceConfig{Endpoint: runOtelEndpoint, ServiceName: "stormcast"})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown(context.Background())
	}

	var redisClient *redis.Client
	if runRedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: runRedisAddr})
		defer redisClient.Close()
	}

	if runDrain {
		if redisClient == nil {
			return fmt.Errorf("--drain requires --redis")
		}
		ui.StartSpinner(fmt.Sprintf("Draining Redis work queue at %s (prefix %q)...", runRedisAddr, runRedisPrefix))
		spawner := cluster.NewRedisSpawner(redisClient, runRedisPrefix)
		err := spawner.Drain(ctx)
		ui.StopSpinner()
		return err
	}

	desc, err := config.LoadEnvironmentDescriptor(args[0])
	if err != nil {
		return err
	}

	timeout, err := desc.TimeoutDuration()
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	spec := engine.RunSpec{
		Environment:   desc.Environment,
		DefaultConfig: desc.DefaultConfig,
		Timeout:       timeout,
	}
	for _, sc := range desc.Scenarios {
		spec.Scenarios = append(spec.Scenarios, engine.ScenarioSpec{
			Name:        sc.Name,
			Scenario:    sc.Scenario,
			Concurrency: sc.Concurrency,
			Config:      sc.Config,
		})
	}

	ctx = wireTransport(ctx, desc.DefaultConfig)

	var env *engine.Environment
	if redisClient != nil {
		env = engine.NewDistributedEnvironment(cluster.NewRedisSpawner(redisClient, runRedisPrefix))
	} else {
		env = engine.NewEnvironment()
	}

	ui.PrintMiniBanner()
	ui.PrintInfo("Running environment %q (%d scenarios)...", desc.Environment, len(spec.Scenarios))
	env.OnProgress = func(done, total int) {
		ui.UpdateProgress(done*100/total, fmt.Sprintf("%d/%d scenarios finished", done, total))
	}
	results := env.Run(ctx, spec)
	fmt.Println()

	passed, failed, total := 0, 0, 0
	for name, outcomes := range results.Sessions {
		for _, o := range outcomes {
			total++
			st := outcomeStatus(o)
			if status.IsSuccess(st, o.Err) {
				passed++
			} else {
				failed++
			}
			ui.PrintWorkerResult(name, st, o.SessionID, o.Err)
		}
	}
	ui.PrintEnvironmentResult(desc.Environment, passed, failed, total, results.DurationMS)

	jsonPath := runOutputJSON
	if jsonPath == "" {
		jsonPath = util.SanitizeForFilename(desc.Environment) + "-report.json"
	}
	if err := report.WriteJSON(jsonPath, results); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	ui.PrintInfo("Wrote JSON report: %s", jsonPath)
	if runOutputCSV != "" {
		if err := report.WriteCSV(runOutputCSV, results); err != nil {
			return fmt.Errorf("write CSV report: %w", err)
		}
		ui.PrintInfo("Wrote CSV report: %s", runOutputCSV)
	}

	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// outcomeStatus classifies a SessionOutcome by its terminal error string.
// Environment.Run already excludes scenario_timeout/fatal_internal outcomes
// from results.Sessions, so in practice o.Err is empty here; the other
// branches stay in place for any Spawner implementation that doesn't, and
// still distinguish a timeout from another fatal error by matching
// engine.ScenarioTimeoutError's message rather than by type.
func outcomeStatus(o engine.SessionOutcome) string {
	switch {
	case o.Err == "":
		return string(status.WorkerCompleted)
	case strings.Contains(o.Err, "timeout"):
		return string(status.WorkerTimeout)
	default:
		return string(status.WorkerFailed)
	}
}

// wireTransport attaches the HTTP and WebSocket clients every scenario's
// actions run against, resolved from the descriptor's default_config
// "target" and "ws_target" keys.
func wireTransport(ctx context.Context, defaultConfig map[string]any) context.Context {
	baseURL, _ := defaultConfig["target"].(string)
	httpClient := transport.NewClient(baseURL, bearerFromConfig(defaultConfig))
	ctx = engine.WithHTTPClient(ctx, httpClient)

	wsTarget, _ := defaultConfig["ws_target"].(string)
	wsClient := transport.WithBaseURL(transport.NewGorillaWSClient(), wsTarget)
	ctx = engine.WithWSClient(ctx, wsClient)

	return ctx
}

// bearerFromConfig resolves the bearer token from the descriptor, then the
// environment, and as a last resort prompts for one on an interactive
// terminal so a descriptor committed without secrets still works locally.
func bearerFromConfig(defaultConfig map[string]any) string {
	if v, ok := defaultConfig["bearer_token"].(string); ok && v != "" {
		return v
	}
	if v := os.Getenv("STORMCAST_BEARER_TOKEN"); v != "" {
		return v
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}
	token, err := ui.PromptPassword("No bearer token configured. Enter one now (blank to skip):")
	if err != nil {
		return ""
	}
	return token
}
