package cmd_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vimoxide/vimoxide/pkg/cli/cmd"
)

func TestAlias(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		shell string
		args  []string
	}{
		"detected zsh":    {shell: "/usr/bin/zsh", args: []string{"alias"}},
		"explicit fish":   {shell: "/bin/bash", args: []string{"alias", "--shell", "fish"}},
		"unknown is bash": {shell: "/bin/tcsh", args: []string{"alias"}},
	}

	for name, testCase := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.env.Shell = testCase.shell

			require.NoError(t, h.execute(testCase.args...))

			snaps.MatchSnapshot(t, h.stdout.String())
		})
	}
}

func TestAlias_RejectsUnknownShell(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.execute("alias", "--shell", "powershell")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestWrapWidth_FollowsWriter(t *testing.T) {
	t.Parallel()

	file, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	tests := map[string]struct {
		writer io.Writer
	}{
		"buffer":       {writer: &bytes.Buffer{}},
		"regular file": {writer: file},
		"discard":      {writer: io.Discard},
	}

	for name, testCase := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, uint(80), cmd.ExportWrapWidth(testCase.writer))
		})
	}
}
