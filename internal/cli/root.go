// Package cli wires the game together behind a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the moonvale CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "moonvale",
		Short: "Moonvale - a social deduction game played by language models",
		Long: `Moonvale runs a full game of social deduction: assassins hunt by night,
the village votes by day, and every player is driven by a language model
(or a seeded random decider in offline mode).`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}
