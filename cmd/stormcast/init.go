package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormcast-dev/stormcast/internal/config"
	"github.com/stormcast-dev/stormcast/internal/ui"
)

var (
	initConcurrency int
	initTarget      string
)

var initCmd = &cobra.Command{
	Use:   "init <descriptor.yaml>",
	Short: "Scaffold a new environment descriptor",
	Args:  cobra.ExactArgs(1),
	RunE:  scaffoldDescriptor,
}

func init() {
	initCmd.Flags().IntVar(&initConcurrency, "concurrency", 10, "Default concurrency for the scaffolded scenario")
	initCmd.Flags().StringVar(&initTarget, "target", "http://localhost:8080", "Default HTTP target")
}

func scaffoldDescriptor(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		overwrite, err := ui.PromptConfirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("%s already exists", path)
		}
	}

	d := &config.EnvironmentDescriptor{
		Environment: "my-environment",
		DefaultConfig: map[string]any{
			"target":  initTarget,
			"timeout": "10s",
		},
		Timeout: "5m",
		Scenarios: []config.ScenarioEntry{
			{Name: "smoke", Scenario: "my_scenario", Concurrency: initConcurrency},
		},
	}

	if err := config.WriteEnvironmentDescriptor(path, d); err != nil {
		return err
	}

	ui.PrintSuccess("Scaffolded %s", path)
	ui.PrintInfo("Register a scenario named %q with engine.RegisterScenario, then run:", "my_scenario")
	ui.PrintDim("  stormcast run %s", path)
	return nil
}
