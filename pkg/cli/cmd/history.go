package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

// ErrNotInHistory is returned by "history forget" for paths that were never recorded.
var ErrNotInHistory = errors.New("path is not in history")

const limitFlagName = "limit"

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "Inspect and maintain the ranked file history",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.AddCommand(newHistoryListCmd(runtimeContainer))
	cmd.AddCommand(newHistoryPruneCmd(runtimeContainer))
	cmd.AddCommand(newHistoryForgetCmd(runtimeContainer))

	return cmd
}

func newHistoryListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Aliases:      []string{"ls"},
		Short:        "List recorded files, most frequently opened first",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, handleHistoryListRunE),
		SilenceUsage: true,
	}

	cmd.Flags().IntP(limitFlagName, "n", 0, "Show at most this many entries (0 shows all)")

	return cmd
}

func handleHistoryListRunE(cmd *cobra.Command, injector di.Injector) error {
	store, err := di.ResolveHistory(injector)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt(limitFlagName)
	if err != nil {
		return fmt.Errorf("read --%s flag: %w", limitFlagName, err)
	}

	entries := store.Entries()
	if len(entries) == 0 {
		notify.Infof(cmd.OutOrStdout(), "history is empty")

		return nil
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "RANK\tPATH")

	for _, entry := range entries {
		_, _ = fmt.Fprintln(writer, strconv.FormatUint(entry.Rank, 10)+"\t"+entry.Path)
	}

	err = writer.Flush()
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	return nil
}

func newHistoryPruneCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "prune",
		Short:        "Forget files that no longer exist",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, handleHistoryPruneRunE),
		SilenceUsage: true,
	}
}

func handleHistoryPruneRunE(cmd *cobra.Command, injector di.Injector) error {
	store, err := di.ResolveHistory(injector)
	if err != nil {
		return err
	}

	dirs, err := di.ResolveDirs(injector)
	if err != nil {
		return err
	}

	removed, err := store.Prune(cmd.Context())
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		notify.Successf(cmd.OutOrStdout(), "nothing to prune")

		return nil
	}

	for _, entry := range removed {
		notify.Activityf(cmd.OutOrStdout(), "forgetting %s", entry.Path)
	}

	err = store.Save(dirs.HistoryFile())
	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "pruned %d of %d entries", len(removed), len(removed)+store.Len())

	return nil
}

func newHistoryForgetCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "forget <path>",
		Aliases:      []string{"rm"},
		Short:        "Remove one file from the history",
		Args:         cobra.ExactArgs(1),
		RunE:         di.RunEWithRuntime(runtimeContainer, handleHistoryForgetRunE),
		SilenceUsage: true,
	}
}

func handleHistoryForgetRunE(cmd *cobra.Command, injector di.Injector) error {
	store, err := di.ResolveHistory(injector)
	if err != nil {
		return err
	}

	dirs, err := di.ResolveDirs(injector)
	if err != nil {
		return err
	}

	path := cmd.Flags().Arg(0)
	if !store.Remove(path) {
		return fmt.Errorf("%w: %s", ErrNotInHistory, path)
	}

	err = store.Save(dirs.HistoryFile())
	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "forgot %s", path)

	return nil
}
