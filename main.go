// Package main is the entry point for vimoxide.
package main

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/vimoxide/vimoxide/internal/buildmeta"
	"github.com/vimoxide/vimoxide/pkg/cli/cmd"
	"github.com/vimoxide/vimoxide/pkg/cli/ui/errorhandler"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.Errorf(errWriter, "panic recovered: %v\n%s", r, debug.Stack())

			exitCode = errorhandler.ExitFailure
		}
	}()

	return runner(args)
}

func runWithArgs(args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return errorhandler.ExitCode(err)
	}

	return 0
}
