package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/di"
	"github.com/vimoxide/vimoxide/pkg/shellrc"
	"golang.org/x/term"
)

const (
	shellFlagName = "shell"
	commandName   = "vimoxide"

	defaultWrapWidth = 80
)

// NewAliasCmd creates the alias command, which prints the shell alias hint.
func NewAliasCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var shell shellrc.Shell

	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Print a short alias for your shell's startup file",
		Long: `Print the line to add to your shell's startup file so "v <file>" runs vimoxide.
The shell is detected from $SHELL unless --shell is given.`,
		Args: cobra.NoArgs,
		RunE: di.RunEWithRuntime(runtimeContainer, func(cmd *cobra.Command, injector di.Injector) error {
			env, err := di.ResolveEnvironment(injector)
			if err != nil {
				return err
			}

			return writeAliasHint(cmd.OutOrStdout(), detectShell(env.Shell, shell))
		}),
		SilenceUsage: true,
	}

	cmd.Flags().Var(&shell, shellFlagName, "Shell to print the alias for (bash, zsh, fish)")

	return cmd
}

// detectShell prefers an explicit shell over the login shell.
func detectShell(loginShell string, explicit shellrc.Shell) shellrc.Shell {
	if explicit != "" {
		return explicit
	}

	return shellrc.Detect(loginShell)
}

func writeAliasHint(writer io.Writer, shell shellrc.Shell) error {
	hint := fmt.Sprintf("If you want, add this line to your %s file:", shell.RCFile())

	_, err := fmt.Fprintf(writer, "%s\n%s\n", wordwrap.WrapString(hint, wrapWidth(writer)), shell.AliasLine(commandName))
	if err != nil {
		return fmt.Errorf("write alias hint: %w", err)
	}

	return nil
}

// wrapWidth is the terminal width when writer is a terminal.
func wrapWidth(writer io.Writer) uint {
	file, ok := writer.(*os.File)
	if !ok {
		return defaultWrapWidth
	}

	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultWrapWidth
	}

	return uint(width)
}
