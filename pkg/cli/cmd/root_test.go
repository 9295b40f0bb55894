package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sync"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vimoxide/vimoxide/pkg/appdir"
	"github.com/vimoxide/vimoxide/pkg/cli/cmd"
	"github.com/vimoxide/vimoxide/pkg/cli/ui/errorhandler"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/fsutil"
	"github.com/vimoxide/vimoxide/pkg/history"
	"github.com/vimoxide/vimoxide/pkg/launcher"
)

const (
	configDir   = "/cfg/vimoxide"
	historyFile = configDir + "/history"
	configFile  = configDir + "/conf.json"
)

var (
	errRootTest = errors.New("boom")
	errNotFound = errors.New("executable file not found in $PATH")
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

// openCall is one executor invocation observed by the fake launcher.
type openCall struct {
	binary string
	args   []string
}

type fakeCommand struct{ err error }

func (c fakeCommand) Run() error { return c.err }

// harness runs the command tree against an in-memory filesystem and a fake editor.
type harness struct {
	t        *testing.T
	fs       afero.Fs
	env      appdir.Environment
	lookErr  error
	runErr   error
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	mu       sync.Mutex
	opened   []openCall
	editFile func(path string)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	return &harness{
		t:   t,
		fs:  afero.NewMemMapFs(),
		env: appdir.Environment{ConfigDirOverride: configDir, Shell: "/usr/bin/zsh"},
	}
}

func (h *harness) writeFile(path, content string) {
	h.t.Helper()

	require.NoError(h.t, afero.WriteFile(h.fs, path, []byte(content), 0o600))
}

func (h *harness) root(args ...string) *cobra.Command {
	h.t.Helper()

	runtime := di.NewRuntimeWith(di.Dependencies{
		Fs:            h.fs,
		Environment:   &h.env,
		Canonicalizer: fsutil.CleanAbs,
		LauncherOption: []launcher.Option{
			launcher.WithLookPath(func(file string) (string, error) {
				if h.lookErr != nil {
					return "", h.lookErr
				}

				return "/usr/bin/" + file, nil
			}),
			launcher.WithCommandFactory(func(_ context.Context, binary string, args []string, _ launcher.Streams) launcher.Command {
				h.mu.Lock()
				h.opened = append(h.opened, openCall{binary: binary, args: args})
				h.mu.Unlock()

				if h.editFile != nil && len(args) == 1 {
					h.editFile(args[0])
				}

				return fakeCommand{err: h.runErr}
			}),
		},
	})

	root := cmd.NewRootCmdWithRuntime(runtime, "test", "test", "test")
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	root.SetArgs(args)

	return root
}

func (h *harness) execute(args ...string) error {
	h.t.Helper()

	return h.root(args...).Execute()
}

func (h *harness) rank(path string) (uint64, bool) {
	h.t.Helper()

	store := history.Load(historyFile, history.WithFs(h.fs), history.WithCanonicalizer(fsutil.CleanAbs))

	return store.Rank(path)
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestExecuteShowsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsHelpFlag(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	require.NoError(t, h.execute("--help"))

	help := h.stdout.String()
	for _, want := range []string{"vimoxide [file]", "resolve", "history", "config", "alias", "--create", "--log-level"} {
		assert.Contains(t, help, want)
	}

	assert.Empty(t, h.opened, "help must not start the editor")
}

func TestOpen_ResolvesStemAndRecordsHistory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile("/work/notes.md", "")
	h.writeFile(historyFile, `{"path":"/work/notes.md","rank":2}`+"\n")

	require.NoError(t, h.execute("notes"))

	assert.Equal(t, []openCall{{binary: "/usr/bin/vim", args: []string{"/work/notes.md"}}}, h.opened)

	rank, ok := h.rank("/work/notes.md")
	assert.True(t, ok)
	assert.Equal(t, uint64(3), rank)
}

func TestOpen_LiteralPathIsRecordedCanonically(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile("/work/a/b.txt", "")

	require.NoError(t, h.execute("/work/a/../a/b.txt"))

	assert.Equal(t, []string{"/work/a/../a/b.txt"}, h.opened[0].args)

	rank, ok := h.rank("/work/a/b.txt")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), rank)
}

func TestOpen_NewFileCreatedByEditorIsRecorded(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.editFile = func(path string) {
		h.writeFile(path, "")
	}

	require.NoError(t, h.execute("/work/draft.txt"))

	assert.Equal(t, []string{"/work/draft.txt"}, h.opened[0].args)

	rank, ok := h.rank("/work/draft.txt")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), rank)
}

func TestOpen_UnsavedNewFileIsNotRecorded(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	require.NoError(t, h.execute("/work/scratch.txt"))

	_, ok := h.rank("/work/scratch.txt")
	assert.False(t, ok)
}

func TestOpen_WithoutArgumentSkipsHistory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	require.NoError(t, h.execute())

	require.Len(t, h.opened, 1)
	assert.Empty(t, h.opened[0].args)

	exists, err := afero.Exists(h.fs, historyFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpen_CreateBypassesMatchingAndHistory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile("/work/notes.md", "")
	h.writeFile(historyFile, `{"path":"/work/notes.md","rank":2}`+"\n")

	require.NoError(t, h.execute("--create", "notes"))

	assert.Equal(t, []string{"notes"}, h.opened[0].args)

	rank, _ := h.rank("/work/notes.md")
	assert.Equal(t, uint64(2), rank)
}

func TestOpen_UsesConfiguredExecutor(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile(configFile, `{"executor": "nvim"}`)

	require.NoError(t, h.execute())

	assert.Equal(t, "/usr/bin/nvim", h.opened[0].binary)
}

func TestOpen_InvalidConfigFallsBackToVim(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile(configFile, `{"executor": "emacs"}`)

	require.NoError(t, h.execute())

	assert.Equal(t, "/usr/bin/vim", h.opened[0].binary)
	assert.NotContains(t, h.stderr.String(), "emacs", "configuration problems are not reported as errors")
}

func TestOpen_EditorExitStatusIsAWarning(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile("/work/notes.md", "")
	h.runErr = &exec.ExitError{}

	require.NoError(t, h.execute("/work/notes.md"))

	assert.Contains(t, h.stderr.String(), "⚠ vim exited with status")

	rank, ok := h.rank("/work/notes.md")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), rank)
}

func TestOpen_ExecutorNotFoundFails(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile("/work/notes.md", "")
	h.lookErr = errNotFound

	err := h.execute("/work/notes.md")

	require.ErrorIs(t, err, launcher.ErrExecutorNotFound)
	assert.Equal(t, errorhandler.ExitFailure, errorhandler.ExitCode(err))

	_, ok := h.rank("/work/notes.md")
	assert.False(t, ok)
}

func TestOpen_ConfigDirectoryFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.env = appdir.Environment{}

	err := cmd.Execute(h.root("notes"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), appdir.ErrConfigDirUnavailable.Error())
	assert.Equal(t, 1, errorhandler.ExitCode(err))
	assert.Empty(t, h.opened)
}

func TestOpen_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.execute("--log-level", "loud", "notes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse log level "loud"`)
}

func TestOpen_TooManyArguments(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.execute("a", "b")

	require.Error(t, err)
	assert.Empty(t, h.opened)
}

func TestExecuteWrapperError(t *testing.T) {
	t.Parallel()

	failing := &cobra.Command{
		Use:  "fail",
		RunE: func(_ *cobra.Command, _ []string) error { return errRootTest },
	}

	rootCmd := cmd.NewRootCmd("test", "test", "test")
	rootCmd.SetArgs([]string{"fail"})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.AddCommand(failing)

	err := cmd.Execute(rootCmd)

	require.ErrorIs(t, err, errRootTest)
	assert.Contains(t, err.Error(), "command execution failed")
}

func TestCompletionSuggestsHistoryStems(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.writeFile(historyFile, `{"path":"/work/notes.md","rank":1}`+"\n"+
		`{"path":"/other/notes.txt","rank":5}`+"\n"+
		`{"path":"/work/main.go","rank":3}`+"\n")

	require.NoError(t, h.execute(cobra.ShellCompRequestCmd, "no"))

	assert.Contains(t, h.stdout.String(), "notes\n")
	assert.NotContains(t, h.stdout.String(), "main")
}
