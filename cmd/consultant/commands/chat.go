// ABOUTME: Interactive chat command holding in-memory conversation history
// ABOUTME: History feeds the dialogue router for follow-up resolution
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/models"
)

var (
	chatHyde    bool
	chatNoAudit bool
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive consultation session",
		Long: `Start an interactive consultation session.

Conversation history stays in memory for the session and is used by the
dialogue router to resolve follow-up questions ("а как его продать?").
History is not persisted across restarts. Exit with "exit" or Ctrl-D.`,
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatHyde, "hyde", false, "Expand queries into hypothetical answers before retrieval")
	cmd.Flags().BoolVar(&chatNoAudit, "no-audit", false, "Skip the self-correction audit pass")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Консультант по госимуществу РК. Задайте ваш вопрос (exit для выхода).")

	var history []models.Turn
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		result := p.agent.Answer(cmd.Context(), query, history, core.Options{
			UseHyde:           chatHyde,
			UseSelfCorrection: !chatNoAudit,
			Stream:            true,
		})

		fmt.Fprintf(out, "\n[%s]\n", result.Category)

		var response string
		if result.Answer.IsStreamed() {
			var sb strings.Builder
			for chunk := range result.Answer.Stream() {
				fmt.Fprint(out, chunk)
				sb.WriteString(chunk)
			}
			fmt.Fprintln(out)
			response = sb.String()
		} else {
			response = result.Answer.Text()
			fmt.Fprintln(out, response)
		}

		if !quiet {
			printSources(cmd, result.Context)
		}

		// History is append-only; the current exchange joins it for the
		// next turn's routing.
		history = append(history,
			models.Turn{Role: models.RoleUser, Content: query},
			models.Turn{Role: models.RoleAssistant, Content: response, Context: result.Context},
		)
	}

	return scanner.Err()
}
