// Package di wires vimoxide's services through a samber/do container.
//
// Each command invocation gets a fresh injector built from the runtime's modules, so
// nothing (history, configuration, logger level) leaks between invocations.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Module registers services on an injector.
type Module func(Injector) error

// Runtime builds an injector per invocation from a fixed module list.
type Runtime struct {
	modules []Module
}

// New creates a runtime from modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector, applies the runtime modules followed by extraModules
// in order, and runs handler. The injector is shut down when handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	modules := make([]Module, 0, len(r.modules)+len(extraModules))
	modules = append(modules, r.modules...)
	modules = append(modules, extraModules...)

	for _, module := range modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler into a cobra RunE. The running command is
// registered on the injector so providers can read its flags and streams.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, provideCommand(cmd))
	}
}

func provideCommand(cmd *cobra.Command) Module {
	return func(i Injector) error {
		do.ProvideValue(i, cmd)

		return nil
	}
}
