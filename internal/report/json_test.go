package report

import (
	"path/filepath"
	"testing"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

func sampleResults() engine.Results {
	return engine.Results{
		Environment: "smoke",
		StartMS:     1000,
		EndMS:       1500,
		DurationMS:  500,
		Sessions: map[string][]engine.SessionOutcome{
			"login": {
				{
					SessionID: "login abc-123",
					Results:   map[string]any{"GET /ping": "ok"},
					Metrics:   map[string]any{"http /ping": 12.5},
					Errors:    map[string]string{},
				},
				{
					SessionID: "login def-456",
					Errors:    map[string]string{"GET /ping": "timeout"},
					Err:       "scenario timeout",
				},
			},
		},
	}
}

func TestWriteJSONAndReadSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := WriteJSON(path, sampleResults()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	summary, err := ReadSummary(path)
	if err != nil {
		t.Fatalf("ReadSummary() error = %v", err)
	}
	if summary.Environment != "smoke" {
		t.Errorf("Environment = %q, want %q", summary.Environment, "smoke")
	}
	if summary.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", summary.WorkerCount)
	}
	if summary.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2 (one action error key + one terminal err)", summary.ErrorCount)
	}
}

func TestReadScenarioSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := WriteJSON(path, sampleResults()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	summary, err := ReadScenarioSummary(path, "login")
	if err != nil {
		t.Fatalf("ReadScenarioSummary() error = %v", err)
	}
	if summary.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", summary.WorkerCount)
	}

	if _, err := ReadScenarioSummary(path, "does-not-exist"); err == nil {
		t.Error("expected an error for an unknown scenario name")
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	if err := WriteCSV(path, sampleResults()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
}
