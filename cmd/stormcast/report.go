package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stormcast-dev/stormcast/internal/report"
	"github.com/stormcast-dev/stormcast/internal/ui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with JSON reports produced by `stormcast run --out`",
}

var reportScenario string

var reportSummarizeCmd = &cobra.Command{
	Use:   "summarize <report.json>",
	Short: "Summarize a JSON report's headline numbers",
	Args:  cobra.ExactArgs(1),
	RunE:  summarizeReport,
}

func init() {
	reportSummarizeCmd.Flags().StringVar(&reportScenario, "scenario", "", "Drill into one scenario's numbers instead of the environment total")
	reportCmd.AddCommand(reportSummarizeCmd)
}

func summarizeReport(cmd *cobra.Command, args []string) error {
	path := args[0]

	summary, err := report.ReadSummary(path)
	if err != nil {
		return err
	}

	name := reportScenario
	if name == "" && len(summary.Scenarios) > 1 {
		choice, err := ui.PromptSelect("Multiple scenarios in this report. Summarize which one?", append([]string{"(environment total)"}, summary.Scenarios...))
		if err != nil {
			return err
		}
		if choice > 0 {
			name = summary.Scenarios[choice-1]
		}
	}

	if name != "" {
		scenarioSummary, err := report.ReadScenarioSummary(path, name)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("Workers: %d\nErrors: %d", scenarioSummary.WorkerCount, scenarioSummary.ErrorCount)
		ui.PrintBox(scenarioSummary.Name, body)
		return nil
	}

	body := fmt.Sprintf("Duration: %dms\nWorkers: %d\nErrors: %d", summary.DurationMS, summary.WorkerCount, summary.ErrorCount)
	ui.PrintBox(summary.Environment, body)
	return nil
}
