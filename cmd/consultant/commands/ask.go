// ABOUTME: CLI command to ask a single question through the pipeline
// ABOUTME: Supports HyDE, self-correction, and simulated streaming output
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/models"
)

var (
	askHyde    bool
	askNoAudit bool
	askStream  bool
	askSources bool
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <вопрос>",
		Short: "Ask a single question",
		Long: `Ask one question about state-property regulations.

The query runs through the full pipeline: dialogue routing, intent
classification, corpus retrieval, grounded generation, and a
self-correction audit. When the query is too ambiguous to answer, a
clarifying question is returned instead.

Examples:
  consultant ask "как передать имущество из республиканской в коммунальную собственность"
  consultant ask --hyde "есть ли ставки аренды для госимущества?"
  consultant ask --stream --sources "как списать автомобиль госучреждения"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askHyde, "hyde", false, "Expand the query into a hypothetical answer before retrieval")
	cmd.Flags().BoolVar(&askNoAudit, "no-audit", false, "Skip the self-correction audit pass")
	cmd.Flags().BoolVar(&askStream, "stream", false, "Print the answer incrementally")
	cmd.Flags().BoolVar(&askSources, "sources", false, "Print retrieved sources after the answer")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	result := p.agent.Answer(cmd.Context(), args[0], nil, core.Options{
		UseHyde:           askHyde,
		UseSelfCorrection: !askNoAudit,
		Stream:            askStream,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Категория: %s\n\n", result.Category)

	if result.Answer.IsStreamed() {
		for chunk := range result.Answer.Stream() {
			fmt.Fprint(cmd.OutOrStdout(), chunk)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), result.Answer.Text())
	}

	if askSources {
		printSources(cmd, result.Context)
	}
	return nil
}

// printSources renders retrieved passages the way the chat UI shows them.
func printSources(cmd *cobra.Command, items []models.ContextItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nИсточники:")
	for _, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", item.Metadata.Source)
		if item.Metadata.FullContext != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", item.Metadata.FullContext)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", truncate(item.Content, 200))
	}
}
