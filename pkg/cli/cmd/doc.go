// Package cmd provides the command-line interface for vimoxide.
//
// The root command opens a file: the argument is resolved against the ranked
// history, handed to the configured executor and recorded once the editor exits.
// Subcommands inspect and maintain that state:
//   - resolve: print the file a query would open
//   - history: list, prune or forget history entries
//   - config: show, create or describe conf.json
//   - alias: print the shell alias hint
//
// A file whose name equals a subcommand is opened with an explicit path, for
// example "vimoxide ./history".
package cmd
