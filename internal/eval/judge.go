// ABOUTME: LLM-as-judge scoring of agent answers against ground truth
// ABOUTME: Returns a 1-5 factual-correctness score with an explanation
package eval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abzhanov/npa-consultant/internal/llm"
)

const judgePrompt = `You are an impartial judge evaluating an AI assistant's answer.

Question: %s

Ground Truth Answer: %s

Agent Answer: %s

Rate the Agent Answer on a scale of 1 to 5 based on how well it matches the Ground Truth in terms of factual correctness.
1 = Completely wrong
5 = Completely correct and accurate

Also provide a brief explanation.

Format: JSON with keys "score" (int) and "explanation" (string).`

// Verdict is the judge's rating of one answer.
type Verdict struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Completer is the completion contract the judge depends on.
type Completer interface {
	Complete(ctx context.Context, msgs []llm.Message, opts llm.Options) (string, error)
}

// Judge scores answers with a completion model.
type Judge struct {
	completer Completer
}

// NewJudge creates a Judge.
func NewJudge(completer Completer) *Judge {
	return &Judge{completer: completer}
}

// Evaluate rates how well answer matches groundTruth for question.
func (j *Judge) Evaluate(ctx context.Context, question, answer, groundTruth string) (Verdict, error) {
	prompt := fmt.Sprintf(judgePrompt, question, groundTruth, answer)

	raw, err := j.completer.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Temperature: 0.1})
	if err != nil {
		return Verdict{}, fmt.Errorf("judge call: %w", err)
	}

	var v Verdict
	if err := json.Unmarshal([]byte(llm.StripJSONFences(raw)), &v); err != nil {
		return Verdict{}, fmt.Errorf("decode judge verdict: %w", err)
	}
	if v.Score < 1 || v.Score > 5 {
		return Verdict{}, fmt.Errorf("judge score out of range: %d", v.Score)
	}
	return v, nil
}
