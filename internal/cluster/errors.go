package cluster

import "fmt"

type unregisteredScenarioErr struct{ name string }

func (e *unregisteredScenarioErr) Error() string {
	return fmt.Sprintf("scenario %q is not registered", e.name)
}

func unregisteredScenarioError(name string) error { return &unregisteredScenarioErr{name: name} }
