// ABOUTME: Intent classifier mapping queries to the fixed category set
// ABOUTME: Never raises; falls back to the default category
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// Classifier maps a rewritten query to one topical category via a single
// forced-choice completion.
type Classifier struct {
	completer Completer
	log       *log.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(completer Completer, logger *log.Logger) *Classifier {
	return &Classifier{
		completer: completer,
		log:       logger.With("component", "classifier"),
	}
}

// Classify returns exactly one recognized category. On any upstream error
// or unrecognized output it degrades to the default category so that
// classification never blocks the pipeline.
func (c *Classifier) Classify(ctx context.Context, query string) models.Outcome[models.Category] {
	prompt := fmt.Sprintf(classifyPrompt, categoryList(), query)

	raw, err := c.completer.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Temperature: 0.1})
	if err != nil {
		c.log.Warn("classification failed, using default category", "error", err)
		return models.Degrade(models.DefaultCategory, fmt.Sprintf("classifier call failed: %v", err))
	}

	cat, ok := models.MatchCategory(raw)
	if !ok {
		c.log.Warn("no recognized category in model output, using default", "output", raw)
		return models.Degrade(models.DefaultCategory, "no recognized category label")
	}
	return models.Ok(cat)
}

func categoryList() string {
	cats := models.Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = string(c)
	}
	return "- " + strings.Join(labels, "\n- ")
}
