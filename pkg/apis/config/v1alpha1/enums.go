package v1alpha1

import (
	"fmt"
	"strings"
)

// --- Executor Types ---

// Executor is the external editor program used to open resolved files.
type Executor string

const (
	// ExecutorVim opens files with vim.
	ExecutorVim Executor = "vim"
	// ExecutorNeovim opens files with nvim.
	ExecutorNeovim Executor = "nvim"
)

// ValidExecutors returns all supported executors.
func ValidExecutors() []Executor {
	return []Executor{ExecutorVim, ExecutorNeovim}
}

// ParseExecutor converts a configured value into an Executor.
// Matching is exact; "Vim" or " nvim" are rejected like any other unknown value.
func ParseExecutor(value string) (Executor, error) {
	for _, executor := range ValidExecutors() {
		if value == string(executor) {
			return executor, nil
		}
	}

	return "", fmt.Errorf(
		"%w: %q (valid options: %s)",
		ErrInvalidExecutor,
		value,
		strings.Join(new(Executor).ValidValues(), ", "),
	)
}

// Set for Executor (pflag.Value interface).
func (e *Executor) Set(value string) error {
	executor, err := ParseExecutor(value)
	if err != nil {
		return err
	}

	*e = executor

	return nil
}

// String returns the string representation of the Executor.
func (e *Executor) String() string {
	return string(*e)
}

// Type returns the type of the Executor.
func (e *Executor) Type() string {
	return "Executor"
}

// Default returns the default value for Executor (vim).
func (e *Executor) Default() any {
	return ExecutorVim
}

// ValidValues returns all valid Executor values as strings.
func (e *Executor) ValidValues() []string {
	return []string{string(ExecutorVim), string(ExecutorNeovim)}
}
