// ABOUTME: CLI command to evaluate the agent against a golden dataset
// ABOUTME: Reports judge scores and retrieval hit rate
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abzhanov/npa-consultant/internal/eval"
)

var evalOutput string

// NewEvalCmd creates the eval command.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <dataset.json>",
		Short: "Evaluate answer quality against a golden dataset",
		Long: `Run a golden question/answer dataset through the full pipeline and
score each answer with an LLM judge (1-5 factual correctness against the
ground truth). Also reports how often the golden source passage appeared
in the retrieved context.

The dataset is a JSON array of objects with "question", "ground_truth",
and "source_metadata" fields.`,
		Args: cobra.ExactArgs(1),
		RunE: runEval,
	}

	cmd.Flags().StringVar(&evalOutput, "output", "", "Write the full report JSON to this file")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	dataset, err := eval.LoadDataset(args[0])
	if err != nil {
		return err
	}
	if len(dataset) == 0 {
		return fmt.Errorf("dataset %s is empty", args[0])
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	runner := eval.NewRunner(p.agent, eval.NewJudge(p.completer), p.logger)
	report, err := runner.Run(cmd.Context(), dataset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, item := range report.Items {
		hit := " "
		if item.RetrievalHit {
			hit = "+"
		}
		fmt.Fprintf(out, "[%d/5] [%s] %s\n", item.Score, hit, truncate(item.Question, 80))
	}
	fmt.Fprintf(out, "\nMean score: %.2f/5  Retrieval hit rate: %.0f%%  (%d items)\n",
		report.MeanScore, report.RetrievalHitRate*100, len(report.Items))

	if evalOutput != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(evalOutput, data, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
