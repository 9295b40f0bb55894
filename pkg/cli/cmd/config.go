package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/fsutil"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

const (
	executorFlagName = "executor"
	forceFlagName    = "force"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Show or create the vimoxide configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.AddCommand(newConfigShowCmd(runtimeContainer))
	cmd.AddCommand(newConfigInitCmd(runtimeContainer))
	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigShowCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Show the effective configuration and where it came from",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, handleConfigShowRunE),
		SilenceUsage: true,
	}
}

func handleConfigShowRunE(cmd *cobra.Command, injector di.Injector) error {
	dirs, err := di.ResolveDirs(injector)
	if err != nil {
		return err
	}

	manager, err := di.ResolveConfigManager(injector)
	if err != nil {
		return err
	}

	result := manager.Load()
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "executor: %s\n", result.Config.Executor)
	_, _ = fmt.Fprintf(out, "config file: %s\n", dirs.ConfigFile())
	_, _ = fmt.Fprintf(out, "history file: %s\n", dirs.HistoryFile())

	if result.UsedDefault {
		if result.Err != nil {
			notify.Warningf(out, "using the default executor (%s): %v", result.Reason, result.Err)
		} else {
			notify.Infof(out, "using the default executor (%s)", result.Reason)
		}
	}

	return nil
}

func newConfigInitCmd(runtimeContainer *di.Runtime) *cobra.Command {
	executor := v1alpha1.ExecutorVim

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write conf.json with the chosen executor",
		Args:  cobra.NoArgs,
		RunE: di.RunEWithRuntime(runtimeContainer, func(cmd *cobra.Command, injector di.Injector) error {
			return handleConfigInitRunE(cmd, injector, executor)
		}),
		SilenceUsage: true,
	}

	cmd.Flags().Var(&executor, executorFlagName, "Editor to open files with (vim, nvim)")
	cmd.Flags().Bool(forceFlagName, false, "Overwrite an existing configuration file")

	return cmd
}

func handleConfigInitRunE(cmd *cobra.Command, injector di.Injector, executor v1alpha1.Executor) error {
	dirs, err := di.ResolveDirs(injector)
	if err != nil {
		return err
	}

	fs, err := di.ResolveFs(injector)
	if err != nil {
		return err
	}

	manager, err := di.ResolveConfigManager(injector)
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool(forceFlagName)
	if err != nil {
		return fmt.Errorf("read --%s flag: %w", forceFlagName, err)
	}

	err = dirs.Ensure(fs)
	if err != nil {
		return err
	}

	err = manager.Write(&v1alpha1.Config{Executor: executor}, force)
	if errors.Is(err, fsutil.ErrFileExists) {
		return fmt.Errorf("%w (use --%s to overwrite)", err, forceFlagName)
	}

	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "configuration file created at %s", dirs.ConfigFile())

	env, err := di.ResolveEnvironment(injector)
	if err != nil {
		return err
	}

	return writeAliasHint(cmd.OutOrStdout(), detectShell(env.Shell, ""))
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of conf.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := v1alpha1.JSONSchema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}
