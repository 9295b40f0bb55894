package launcher_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
	"github.com/vimoxide/vimoxide/pkg/launcher"
)

var (
	errNotFound = errors.New("executable file not found in $PATH")
	errNoExec   = errors.New("exec format error")
)

type fakeCommand struct {
	err error
}

func (c fakeCommand) Run() error { return c.err }

type recorder struct {
	binary string
	args   []string
	calls  int
}

func (r *recorder) factory(err error) launcher.CommandFactory {
	return func(_ context.Context, binary string, args []string, _ launcher.Streams) launcher.Command {
		r.calls++
		r.binary = binary
		r.args = args

		return fakeCommand{err: err}
	}
}

func fixedLookPath(path string) func(string) (string, error) {
	return func(file string) (string, error) {
		return filepath.Join(path, file), nil
	}
}

func TestOpen_PassesAtMostOneArgument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		executor v1alpha1.Executor
		path     string
		wantBin  string
		wantArgs []string
	}{
		"vim with file":    {executor: v1alpha1.ExecutorVim, path: "/a/notes.md", wantBin: "/usr/bin/vim", wantArgs: []string{"/a/notes.md"}},
		"nvim with file":   {executor: v1alpha1.ExecutorNeovim, path: "todo", wantBin: "/usr/bin/nvim", wantArgs: []string{"todo"}},
		"vim without file": {executor: v1alpha1.ExecutorVim, wantBin: "/usr/bin/vim"},
	}

	for name, testCase := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			openLauncher := launcher.New(testCase.executor,
				launcher.WithLookPath(fixedLookPath("/usr/bin")),
				launcher.WithCommandFactory(rec.factory(nil)),
			)

			require.NoError(t, openLauncher.Open(context.Background(), testCase.path))

			assert.Equal(t, 1, rec.calls)
			assert.Equal(t, testCase.wantBin, rec.binary)
			assert.Equal(t, testCase.wantArgs, rec.args)
			assert.Equal(t, testCase.executor, openLauncher.Executor())
		})
	}
}

func TestOpen_ExecutorNotFound(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	openLauncher := launcher.New(v1alpha1.ExecutorNeovim,
		launcher.WithLookPath(func(string) (string, error) { return "", errNotFound }),
		launcher.WithCommandFactory(rec.factory(nil)),
	)

	err := openLauncher.Open(context.Background(), "file")

	require.ErrorIs(t, err, launcher.ErrExecutorNotFound)
	require.ErrorIs(t, err, errNotFound)
	assert.Contains(t, err.Error(), "nvim")
	assert.Zero(t, rec.calls)
}

func TestOpen_SpawnFailure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	openLauncher := launcher.New(v1alpha1.ExecutorVim,
		launcher.WithLookPath(fixedLookPath("/usr/bin")),
		launcher.WithCommandFactory(rec.factory(errNoExec)),
	)

	err := openLauncher.Open(context.Background(), "file")

	require.ErrorIs(t, err, launcher.ErrSpawnFailed)
	require.ErrorIs(t, err, errNoExec)
}

func TestOpen_WarnsWhenStdinIsNotATerminal(t *testing.T) {
	t.Parallel()

	var warnings []string

	openLauncher := launcher.New(v1alpha1.ExecutorVim,
		launcher.WithLookPath(fixedLookPath("/usr/bin")),
		launcher.WithCommandFactory((&recorder{}).factory(nil)),
		launcher.WithStreams(launcher.Streams{In: strings.NewReader("")}),
		launcher.WithWarn(func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}),
	)

	require.NoError(t, openLauncher.Open(context.Background(), "file"))

	assert.Equal(t, []string{"stdin is not a terminal; vim may not behave as expected"}, warnings)
}

func TestOpen_RunsRealProcess(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "vim")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$#:$1\"\nexit \"${EXIT_CODE:-0}\"\n"), 0o700))

	var stdout bytes.Buffer

	openLauncher := launcher.New(v1alpha1.ExecutorVim,
		launcher.WithLookPath(func(string) (string, error) { return script, nil }),
		launcher.WithStreams(launcher.Streams{In: strings.NewReader(""), Out: &stdout, Err: &stdout}),
	)

	require.NoError(t, openLauncher.Open(context.Background(), "my notes.md"))
	assert.Equal(t, "1:my notes.md\n", stdout.String())

	stdout.Reset()

	require.NoError(t, openLauncher.Open(context.Background(), ""))
	assert.Equal(t, "0:\n", stdout.String())
}

func TestOpen_NonZeroExitStatus(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "nvim")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o700))

	openLauncher := launcher.New(v1alpha1.ExecutorNeovim,
		launcher.WithLookPath(func(string) (string, error) { return script, nil }),
		launcher.WithStreams(launcher.Streams{In: strings.NewReader("")}),
	)

	err := openLauncher.Open(context.Background(), "file")

	var exitErr *launcher.ExitStatusError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "nvim exited with status 3", exitErr.Error())
}
