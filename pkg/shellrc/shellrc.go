// Package shellrc detects the user's shell and formats the alias hint for its rc file.
package shellrc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedShell is returned when a shell name is not bash, zsh or fish.
var ErrUnsupportedShell = errors.New("unsupported shell")

// AliasName is the short command the alias hint suggests.
const AliasName = "v"

// Shell is a supported interactive shell.
type Shell string

const (
	// ShellBash is GNU bash.
	ShellBash Shell = "bash"
	// ShellZsh is the Z shell.
	ShellZsh Shell = "zsh"
	// ShellFish is the friendly interactive shell.
	ShellFish Shell = "fish"
)

// Detect maps a login shell path such as $SHELL to a Shell.
// Unknown or empty values fall back to bash.
func Detect(shellPath string) Shell {
	name := filepath.Base(shellPath)

	for _, shell := range []Shell{ShellBash, ShellZsh, ShellFish} {
		if strings.Contains(name, string(shell)) {
			return shell
		}
	}

	return ShellBash
}

// RCFile returns the startup file for the shell, relative to the home directory.
func (s Shell) RCFile() string {
	switch s {
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	case ShellBash:
		return "~/.bashrc"
	default:
		return "~/.bashrc"
	}
}

// AliasLine returns the alias definition for command.
func (s Shell) AliasLine(command string) string {
	return fmt.Sprintf("alias %s='%s'", AliasName, command)
}

// Set for Shell (pflag.Value interface).
func (s *Shell) Set(value string) error {
	for _, shell := range []Shell{ShellBash, ShellZsh, ShellFish} {
		if value == string(shell) {
			*s = shell

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %q (valid options: %s)",
		ErrUnsupportedShell,
		value,
		strings.Join(s.ValidValues(), ", "),
	)
}

// String returns the shell name.
func (s *Shell) String() string {
	return string(*s)
}

// Type returns the type of the Shell.
func (s *Shell) Type() string {
	return "Shell"
}

// ValidValues returns all valid Shell values as strings.
func (s *Shell) ValidValues() []string {
	return []string{string(ShellBash), string(ShellZsh), string(ShellFish)}
}
