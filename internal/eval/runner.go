// ABOUTME: Evaluation runner executing a golden dataset through the agent
// ABOUTME: Collects judge scores and retrieval-hit rate per dataset item
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// DatasetItem is one golden question/answer pair with the metadata of the
// passage the answer was generated from.
type DatasetItem struct {
	Question       string             `json:"question"`
	GroundTruth    string             `json:"ground_truth"`
	SourceMetadata models.PassageMeta `json:"source_metadata"`
}

// ItemResult is the evaluation outcome for one dataset item.
type ItemResult struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Score        int    `json:"score"`
	Explanation  string `json:"explanation"`
	RetrievalHit bool   `json:"retrieval_hit"`
	Category     string `json:"category"`
}

// Report aggregates an evaluation run.
type Report struct {
	Items            []ItemResult `json:"items"`
	MeanScore        float64      `json:"mean_score"`
	RetrievalHitRate float64      `json:"retrieval_hit_rate"`
}

// Runner evaluates the agent against a golden dataset.
type Runner struct {
	agent *core.Agent
	judge *Judge
	log   *log.Logger
}

// NewRunner creates an evaluation Runner.
func NewRunner(agent *core.Agent, judge *Judge, logger *log.Logger) *Runner {
	return &Runner{
		agent: agent,
		judge: judge,
		log:   logger.With("component", "eval"),
	}
}

// LoadDataset reads a golden dataset from a JSON file.
func LoadDataset(path string) ([]DatasetItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var items []DatasetItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return items, nil
}

// Run evaluates every dataset item: the agent answers with no history and
// self-correction enabled, the judge scores the answer, and retrieval is
// counted as a hit when the source passage's hierarchical path appears in
// the retrieved context.
func (r *Runner) Run(ctx context.Context, dataset []DatasetItem) (*Report, error) {
	report := &Report{}
	var totalScore, hits int

	for _, item := range dataset {
		r.log.Info("evaluating", "question", item.Question)

		result := r.agent.Answer(ctx, item.Question, nil, core.Options{UseSelfCorrection: true})
		answer := result.Answer.Collect()

		verdict, err := r.judge.Evaluate(ctx, item.Question, answer, item.GroundTruth)
		if err != nil {
			r.log.Warn("judge failed, scoring zero", "error", err)
			verdict = Verdict{Score: 0, Explanation: "judge error"}
		}

		hit := retrievalHit(result.Context, item.SourceMetadata)
		if hit {
			hits++
		}
		totalScore += verdict.Score

		report.Items = append(report.Items, ItemResult{
			Question:     item.Question,
			Answer:       answer,
			Score:        verdict.Score,
			Explanation:  verdict.Explanation,
			RetrievalHit: hit,
			Category:     string(result.Category),
		})
	}

	if len(report.Items) > 0 {
		report.MeanScore = float64(totalScore) / float64(len(report.Items))
		report.RetrievalHitRate = float64(hits) / float64(len(report.Items))
	}
	return report, nil
}

// retrievalHit reports whether any retrieved passage came from the same
// source document and structural path as the golden passage.
func retrievalHit(retrieved []models.ContextItem, golden models.PassageMeta) bool {
	for _, item := range retrieved {
		if item.Metadata.Source == golden.Source && item.Metadata.FullContext == golden.FullContext {
			return true
		}
	}
	return false
}
