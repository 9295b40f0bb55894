// Package errorhandler runs the cobra command tree and turns its failures into
// user-facing errors with a process exit code.
package errorhandler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ExitFailure is the exit code used for every failed invocation.
const ExitFailure = 1

// Executor coordinates Cobra execution, capturing stderr output and surfacing aggregated errors.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the provided command while intercepting Cobra's error stream.
// It returns nil on success, or a *CommandError carrying the normalized stderr message
// and the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		// Warnings written during a successful run still belong on stderr.
		if errBuf.Len() > 0 {
			_, _ = originalErrWriter.Write(errBuf.Bytes())
		}

		return nil
	}

	replay, printed := splitCobraError(errBuf.String())
	if replay != "" {
		_, _ = io.WriteString(originalErrWriter, replay)
	}

	return &CommandError{
		message: e.normalizer.Normalize(printed),
		cause:   err,
	}
}

// splitCobraError separates output written before cobra's "Error: " line from the
// error report itself.
func splitCobraError(captured string) (string, string) {
	idx := strings.LastIndex(captured, "\nError: ")
	if idx < 0 {
		return "", captured
	}

	return captured[:idx+1], captured[idx+1:]
}

// CommandError represents a Cobra execution failure augmented with normalized stderr output.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// ExitCode maps an execution error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitCoder interface{ ExitCode() int }
	if errors.As(err, &exitCoder) && exitCoder.ExitCode() > 0 {
		return exitCoder.ExitCode()
	}

	return ExitFailure
}

// DefaultNormalizer strips cobra's decorations from captured stderr output.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes redundant "Error:" prefixes, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	first := strings.TrimSpace(lines[0])
	first = strings.TrimPrefix(first, "Error: ")
	lines[0] = first

	return strings.Join(lines, "\n")
}
