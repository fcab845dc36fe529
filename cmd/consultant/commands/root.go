// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ask, chat, load, eval, and version commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultant",
		Short: "AI consultant for Kazakhstan state-property regulations",
		Long: `Консультант по госимуществу РК.

Answers natural-language questions about state-property regulations,
grounding every answer in passages retrieved from the indexed corpus of
normative legal acts and procedural instructions.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewLoadCmd())
	cmd.AddCommand(NewEvalCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
