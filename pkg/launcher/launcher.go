// Package launcher starts the configured executor on a resolved file and waits for it.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
	"github.com/vimoxide/vimoxide/pkg/logging"
	"golang.org/x/term"
)

// ErrExecutorNotFound is returned when the executor binary is not on PATH.
var ErrExecutorNotFound = errors.New("executor not found in PATH")

// ErrSpawnFailed is returned when the executor could not be started.
var ErrSpawnFailed = errors.New("failed to start executor")

// ExitStatusError reports that the executor ran but exited with a non-zero status.
type ExitStatusError struct {
	Executor v1alpha1.Executor
	Code     int
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Executor, e.Code)
}

// Command is the subset of *exec.Cmd the launcher drives.
type Command interface {
	Run() error
}

// CommandFactory builds the process for binary and args wired to the given streams.
type CommandFactory func(ctx context.Context, binary string, args []string, streams Streams) Command

// Streams are the standard streams handed to the executor.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Launcher opens files with one executor.
type Launcher struct {
	executor   v1alpha1.Executor
	streams    Streams
	lookPath   func(file string) (string, error)
	newCommand CommandFactory
	logger     logrus.FieldLogger
	// Warn receives non-fatal warnings, such as stdin not being a terminal.
	Warn func(format string, args ...any)
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStreams overrides the standard streams passed to the executor.
func WithStreams(streams Streams) Option {
	return func(l *Launcher) {
		l.streams = streams
	}
}

// WithLookPath overrides how the executor binary is located.
func WithLookPath(lookPath func(file string) (string, error)) Option {
	return func(l *Launcher) {
		l.lookPath = lookPath
	}
}

// WithCommandFactory overrides how the executor process is created.
func WithCommandFactory(factory CommandFactory) Option {
	return func(l *Launcher) {
		l.newCommand = factory
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Launcher) {
		l.logger = logging.OrDiscard(logger)
	}
}

// WithWarn sets the warning sink.
func WithWarn(warn func(format string, args ...any)) Option {
	return func(l *Launcher) {
		l.Warn = warn
	}
}

// New creates a Launcher for executor using the process's standard streams.
func New(executor v1alpha1.Executor, opts ...Option) *Launcher {
	launcher := &Launcher{
		executor:   executor,
		streams:    Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		lookPath:   exec.LookPath,
		newCommand: execCommand,
		logger:     logging.Discard(),
		Warn:       func(string, ...any) {},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(launcher)
		}
	}

	return launcher
}

// Executor returns the executor this launcher starts.
func (l *Launcher) Executor() v1alpha1.Executor {
	return l.executor
}

// Open runs the executor on path and blocks until it exits.
// An empty path starts the executor without a file argument.
func (l *Launcher) Open(ctx context.Context, path string) error {
	binary, err := l.lookPath(string(l.executor))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecutorNotFound, l.executor, err)
	}

	var args []string
	if path != "" {
		args = []string{path}
	}

	if !isTerminal(l.streams.In) {
		l.Warn("stdin is not a terminal; %s may not behave as expected", l.executor)
	}

	l.logger.WithFields(logrus.Fields{
		"binary": binary,
		"args":   args,
	}).Debug("starting executor")

	err = l.newCommand(ctx, binary, args, l.streams).Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitStatusError{Executor: l.executor, Code: exitErr.ExitCode()}
	}

	return fmt.Errorf("%w %s: %w", ErrSpawnFailed, l.executor, err)
}

func execCommand(ctx context.Context, binary string, args []string, streams Streams) Command {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err

	return cmd
}

// isTerminal reports whether reader is an *os.File attached to a terminal.
func isTerminal(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
