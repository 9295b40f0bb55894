package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/matcher"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

// NewResolveCmd creates the resolve command, which prints the file a query would open.
func NewResolveCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <query>",
		Short: "Print the file a query would open",
		Long: `Resolve a query the same way "vimoxide <query>" does and print the result.
Nothing is opened and the history is not changed.`,
		Args:         cobra.ExactArgs(1),
		RunE:         di.RunEWithRuntime(runtimeContainer, handleResolveRunE),
		SilenceUsage: true,
	}
}

func handleResolveRunE(cmd *cobra.Command, injector di.Injector) error {
	store, err := di.ResolveHistory(injector)
	if err != nil {
		return err
	}

	queryMatcher, err := di.ResolveMatcher(injector)
	if err != nil {
		return err
	}

	resolution := queryMatcher.Resolve(store, cmd.Flags().Arg(0))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resolution.Path)
	if err != nil {
		return fmt.Errorf("write resolution: %w", err)
	}

	switch resolution.Rule {
	case matcher.RuleStem, matcher.RuleSubstring:
		notify.Infof(cmd.ErrOrStderr(), "matched by %s (rank %d)", resolution.Rule, resolution.Rank)
	case matcher.RuleLiteral, matcher.RuleFallback:
		notify.Infof(cmd.ErrOrStderr(), "matched by %s", resolution.Rule)
	}

	return nil
}
