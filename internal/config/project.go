// Package config reads environment descriptor files: the YAML documents
// that name which scenarios an Environment runs, at what concurrency, and
// against which default config.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScenarioEntry is one scenario's entry in an environment descriptor.
type ScenarioEntry struct {
	Name        string         `yaml:"name"`
	Scenario    string         `yaml:"scenario"`
	Concurrency int            `yaml:"concurrency"`
	Config      map[string]any `yaml:"config,omitempty"`
}

// EnvironmentDescriptor is the on-disk shape of one environment YAML file:
// an environment name, a default_config every scenario's config overlays
// onto, a batch timeout, and the list of scenarios to run.
type EnvironmentDescriptor struct {
	Environment   string          `yaml:"environment"`
	DefaultConfig map[string]any  `yaml:"default_config,omitempty"`
	Timeout       string          `yaml:"timeout,omitempty"`
	Scenarios     []ScenarioEntry `yaml:"scenarios"`

	// LastLoadedAt records when this descriptor was last read from disk
	// (RFC3339). It is not written back to YAML.
	LastLoadedAt string `yaml:"-"`
}

// MarkLoaded sets LastLoadedAt to now (UTC, RFC3339).
func (d *EnvironmentDescriptor) MarkLoaded() {
	d.LastLoadedAt = time.Now().UTC().Format(time.RFC3339)
}

// Timeout duration parsed from d.Timeout; zero means unbounded. "infinity"
// and the empty string both mean unbounded.
func (d *EnvironmentDescriptor) TimeoutDuration() (time.Duration, error) {
	if d.Timeout == "" || d.Timeout == "infinity" {
		return 0, nil
	}
	return time.ParseDuration(d.Timeout)
}

// LoadEnvironmentDescriptor reads and parses an environment descriptor YAML
// file, defaulting every scenario's Concurrency to 1 when unset.
func LoadEnvironmentDescriptor(path string) (*EnvironmentDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment descriptor: %w", err)
	}

	var d EnvironmentDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse environment descriptor: %w", err)
	}
	if d.DefaultConfig == nil {
		d.DefaultConfig = make(map[string]any)
	}
	for i := range d.Scenarios {
		if d.Scenarios[i].Concurrency <= 0 {
			d.Scenarios[i].Concurrency = 1
		}
	}
	d.MarkLoaded()
	return &d, nil
}

// WriteEnvironmentDescriptor writes a descriptor to path, for `stormcast
// init` scaffolding.
func WriteEnvironmentDescriptor(path string, d *EnvironmentDescriptor) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal environment descriptor: %w", err)
	}
	header := []byte("# Generated by stormcast. Edit the scenarios and default_config below.\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
