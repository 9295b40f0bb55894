package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/cli/ui/errorhandler"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/launcher"
	"github.com/vimoxide/vimoxide/pkg/logging"
	"github.com/vimoxide/vimoxide/pkg/matcher"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

const createFlagName = "create"

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command on an explicit runtime container.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vimoxide [file]",
		Short: "Open files in vim or nvim by name, ranked by how often you open them",
		Long: `vimoxide opens a file in the configured editor (vim or nvim).

When the argument is not an existing path it is matched against the files you
opened before: first by exact name without extension, then by substring, preferring
the most frequently opened file. Without an argument the editor starts empty.`,
		Args:              cobra.MaximumNArgs(1),
		RunE:              di.RunEWithRuntime(runtimeContainer, handleOpenRunE),
		ValidArgsFunction: completeFromHistory(runtimeContainer),
		SilenceUsage:      true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(
		logging.FlagName,
		logging.DefaultLevel,
		"Diagnostic log level (trace, debug, info, warn, error). Env: "+logging.LevelEnvVar,
	)
	cmd.Flags().BoolP(
		createFlagName,
		"c",
		false,
		"Open the argument as a new file, skipping matching and history",
	)

	cmd.AddCommand(NewResolveCmd(runtimeContainer))
	cmd.AddCommand(NewHistoryCmd(runtimeContainer))
	cmd.AddCommand(NewConfigCmd(runtimeContainer))
	cmd.AddCommand(NewAliasCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(context.Background(), cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleOpenRunE resolves the argument, runs the editor and records the open.
func handleOpenRunE(cmd *cobra.Command, injector di.Injector) error {
	dirs, err := di.ResolveDirs(injector)
	if err != nil {
		return err
	}

	fs, err := di.ResolveFs(injector)
	if err != nil {
		return err
	}

	err = dirs.Ensure(fs)
	if err != nil {
		return err
	}

	openLauncher, err := newLauncher(injector)
	if err != nil {
		return err
	}

	args := cmd.Flags().Args()
	if len(args) == 0 {
		return reportOpen(cmd, openLauncher.Open(cmd.Context(), ""))
	}

	create, err := cmd.Flags().GetBool(createFlagName)
	if err != nil {
		return fmt.Errorf("read --%s flag: %w", createFlagName, err)
	}

	if create {
		return reportOpen(cmd, openLauncher.Open(cmd.Context(), args[0]))
	}

	store, err := di.ResolveHistory(injector)
	if err != nil {
		return err
	}

	queryMatcher, err := di.ResolveMatcher(injector)
	if err != nil {
		return err
	}

	resolution := queryMatcher.Resolve(store, args[0])

	err = reportOpen(cmd, openLauncher.Open(cmd.Context(), resolution.Path))
	if err != nil {
		return err
	}

	if !store.Increment(resolution.Path) {
		logger, logErr := di.ResolveLogger(injector)
		if logErr == nil {
			logger.WithField("path", resolution.Path).Debug("file does not exist, history unchanged")
		}
	}

	return store.Save(dirs.HistoryFile())
}

// newLauncher builds a launcher for the configured executor.
func newLauncher(injector di.Injector) (*launcher.Launcher, error) {
	manager, err := di.ResolveConfigManager(injector)
	if err != nil {
		return nil, err
	}

	factory, err := di.ResolveLauncherFactory(injector)
	if err != nil {
		return nil, err
	}

	return factory(manager.Load().Config.Executor), nil
}

// reportOpen turns a non-zero editor exit status into a warning.
func reportOpen(cmd *cobra.Command, err error) error {
	var exitErr *launcher.ExitStatusError
	if errors.As(err, &exitErr) {
		notify.Warningf(cmd.ErrOrStderr(), "%v", exitErr)

		return nil
	}

	return err
}

// completeFromHistory suggests history file names matching the typed prefix,
// most frequently opened first. Regular file completion stays enabled.
func completeFromHistory(runtimeContainer *di.Runtime) func(
	*cobra.Command, []string, string,
) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var suggestions []string

		_ = runtimeContainer.Invoke(func(injector di.Injector) error {
			store, err := di.ResolveHistory(injector)
			if err != nil {
				return err
			}

			seen := make(map[string]bool)

			for _, entry := range store.Entries() {
				stem := matcher.Stem(entry.Path)
				if seen[stem] || !strings.HasPrefix(stem, toComplete) {
					continue
				}

				seen[stem] = true
				suggestions = append(suggestions, stem)
			}

			return nil
		})

		return suggestions, cobra.ShellCompDirectiveDefault
	}
}
