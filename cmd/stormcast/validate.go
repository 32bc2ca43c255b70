package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/stormcast-dev/stormcast/examples/scenarios"
	"github.com/stormcast-dev/stormcast/internal/engine"
	"github.com/stormcast-dev/stormcast/internal/ui"
	"github.com/stormcast-dev/stormcast/internal/yaml"
)

var validateCmd = &cobra.Command{
	Use:   "validate <descriptor.yaml>",
	Short: "Check a descriptor for structural errors",
	Args:  cobra.ExactArgs(1),
	RunE:  validateDescriptor,
}

func validateDescriptor(cmd *cobra.Command, args []string) error {
	yaml.Registered = func(name string) bool {
		_, ok := engine.ResolveScenario(name)
		return ok
	}

	result, err := yaml.ValidateYAMLFile(args[0])
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		ui.PrintWarning("%s", w)
	}
	for _, e := range result.Errors {
		ui.PrintError("%s", e)
	}

	if !result.Valid {
		ui.PrintError("%s is invalid", args[0])
		os.Exit(1)
	}

	ui.PrintSuccess("%s is valid", args[0])
	return nil
}
