// Package yaml validates environment descriptor YAML files, checking for
// syntax errors, required fields, and scenario-registry mismatches before
// an Environment run starts.
package yaml

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidationResult contains the result of validating one environment
// descriptor.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Descriptor mirrors internal/config.EnvironmentDescriptor's on-disk shape.
// It is redeclared here (rather than imported) so this package can validate
// a descriptor before internal/config ever constructs one, and so its
// stricter per-field checks don't leak into the loader's defaulting logic.
type Descriptor struct {
	Environment   string         `yaml:"environment"`
	DefaultConfig map[string]any `yaml:"default_config,omitempty"`
	Timeout       string         `yaml:"timeout,omitempty"`
	Scenarios     []ScenarioSpec `yaml:"scenarios"`
}

// ScenarioSpec is one scenario entry within a descriptor.
type ScenarioSpec struct {
	Name        string         `yaml:"name"`
	Scenario    string         `yaml:"scenario"`
	Concurrency int            `yaml:"concurrency"`
	Config      map[string]any `yaml:"config,omitempty"`
}

// namePattern matches the kebab/snake-case identifiers scenario and
// environment names must use.
var namePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Registered, when non-nil, is consulted to flag scenario names with no
// matching engine.RegisterScenario entry as errors rather than just
// structural guesses. cmd/stormcast sets this after loading scenario
// plugins; ValidateYAML works without it, skipping that check.
var Registered func(name string) bool

// ValidateYAML validates an environment descriptor's YAML content.
//
// This checks:
//   - YAML syntax validity
//   - Required fields (environment, scenarios[].name, scenarios[].scenario)
//   - Name format (environment and scenario names are kebab/snake-case)
//   - Concurrency values (must be positive when set)
//   - Timeout format (a valid Go duration string, or "infinity"/empty)
//   - Scenario name collisions within one descriptor
//   - Scenario registry membership, when Registered is set
func ValidateYAML(content string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	var d Descriptor
	if err := yaml.Unmarshal([]byte(content), &d); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("YAML parse error: %v", err))
		return result
	}

	if d.Environment == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: environment")
	} else if !namePattern.MatchString(d.Environment) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid environment name '%s': must be lowercase letters, numbers, hyphens, or underscores", d.Environment))
	}

	if d.Timeout != "" && d.Timeout != "infinity" {
		if _, err := time.ParseDuration(d.Timeout); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid timeout '%s': %v", d.Timeout, err))
		}
	}

	if len(d.Scenarios) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Descriptor must declare at least one scenario")
	}

	seenNames := make(map[string]bool)
	for i, sc := range d.Scenarios {
		errs, warns := validateScenario(sc, i+1)
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warns...)
		if len(errs) > 0 {
			result.Valid = false
		}

		if sc.Name != "" {
			if seenNames[sc.Name] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Scenario %d: duplicate name '%s'", i+1, sc.Name))
			}
			seenNames[sc.Name] = true
		}
	}

	return result
}

func validateScenario(sc ScenarioSpec, index int) ([]string, []string) {
	var errors, warnings []string
	label := fmt.Sprintf("Scenario %d", index)

	if sc.Name == "" {
		errors = append(errors, fmt.Sprintf("%s: Missing required field: name", label))
	} else if !namePattern.MatchString(sc.Name) {
		errors = append(errors, fmt.Sprintf("%s: Invalid name '%s': must be lowercase letters, numbers, hyphens, or underscores", label, sc.Name))
	} else {
		label = fmt.Sprintf("Scenario '%s'", sc.Name)
	}

	if sc.Scenario == "" {
		errors = append(errors, fmt.Sprintf("%s: Missing required field: scenario", label))
	} else if Registered != nil && !Registered(sc.Scenario) {
		errors = append(errors, fmt.Sprintf("%s: scenario '%s' is not registered", label, sc.Scenario))
	}

	if sc.Concurrency < 0 {
		errors = append(errors, fmt.Sprintf("%s: concurrency must be positive, got %d", label, sc.Concurrency))
	} else if sc.Concurrency == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: concurrency not set, defaults to 1", label))
	} else if sc.Concurrency > 10000 {
		warnings = append(warnings, fmt.Sprintf("%s: concurrency %d is unusually high", label, sc.Concurrency))
	}

	return errors, warnings
}

// ValidateYAMLFile validates an environment descriptor file from disk.
func ValidateYAMLFile(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ValidateYAML(string(content)), nil
}

// GetDescriptor parses YAML content and returns the descriptor, without
// running ValidateYAML's stricter checks.
func GetDescriptor(content string) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal([]byte(content), &d); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &d, nil
}
