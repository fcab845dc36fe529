// ABOUTME: HyDE query expander generating a hypothetical ideal answer
// ABOUTME: The expansion, not the raw query, is embedded for search
package core

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// Expander rewrites a query into a hypothetical plausible answer to
// improve semantic match before retrieval.
type Expander struct {
	completer Completer
	log       *log.Logger
}

// NewExpander creates an Expander.
func NewExpander(completer Completer, logger *log.Logger) *Expander {
	return &Expander{
		completer: completer,
		log:       logger.With("component", "expander"),
	}
}

// Expand returns the hypothetical document text for query. Generation
// failure degrades to the original query text.
func (e *Expander) Expand(ctx context.Context, query string) models.Outcome[string] {
	prompt := fmt.Sprintf(hydePrompt, query)

	doc, err := e.completer.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Temperature: 0.7})
	if err != nil {
		e.log.Warn("hyde generation failed, searching with original query", "error", err)
		return models.Degrade(query, fmt.Sprintf("hyde call failed: %v", err))
	}
	if doc == "" {
		return models.Degrade(query, "hyde returned empty text")
	}
	return models.Ok(doc)
}
