package report

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Summary is a lightweight read-back of a JSON report, used by `stormcast
// report summarize` without decoding the full document into Go structs.
type Summary struct {
	Environment string
	DurationMS  int64
	WorkerCount int
	ErrorCount  int
	Scenarios   []string
}

// ReadSummary extracts headline numbers from a report written by WriteJSON
// using gjson path queries rather than a full unmarshal.
func ReadSummary(path string) (Summary, error) {
	root, err := readReport(path)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Environment: root.Get("environment").String(),
		DurationMS:  root.Get("duration_ms").Int(),
	}

	root.Get("sessions").ForEach(func(name, scenario gjson.Result) bool {
		summary.Scenarios = append(summary.Scenarios, name.String())
		scenario.ForEach(func(_, worker gjson.Result) bool {
			summary.WorkerCount++
			summary.ErrorCount += len(worker.Get("errors").Map())
			if worker.Get("err").Exists() {
				summary.ErrorCount++
			}
			return true
		})
		return true
	})

	return summary, nil
}

// ScenarioSummary is ReadSummary narrowed to a single scenario's workers.
type ScenarioSummary struct {
	Name        string
	WorkerCount int
	ErrorCount  int
}

// ReadScenarioSummary extracts headline numbers for just one scenario name
// within a report, for `stormcast report summarize --scenario`.
func ReadScenarioSummary(path, name string) (ScenarioSummary, error) {
	root, err := readReport(path)
	if err != nil {
		return ScenarioSummary{}, err
	}

	scenario := root.Get("sessions." + gjson.Escape(name))
	if !scenario.Exists() {
		return ScenarioSummary{}, fmt.Errorf("no scenario named %q in report at %s", name, path)
	}

	out := ScenarioSummary{Name: name}
	scenario.ForEach(func(_, worker gjson.Result) bool {
		out.WorkerCount++
		out.ErrorCount += len(worker.Get("errors").Map())
		if worker.Get("err").Exists() {
			out.ErrorCount++
		}
		return true
	})
	return out, nil
}

func readReport(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read report: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("report at %s is not valid JSON", path)
	}
	return gjson.ParseBytes(data), nil
}
