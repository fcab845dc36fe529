// ABOUTME: Answer generator producing grounded, citation-annotated answers
// ABOUTME: Empty context returns a fixed refusal with zero model calls
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// RefusalText is returned verbatim whenever retrieval produced nothing.
const RefusalText = "К сожалению, я не нашел информации по вашему запросу в базе знаний."

// Generator produces answers grounded exclusively in retrieved passages.
type Generator struct {
	completer Completer
	log       *log.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(completer Completer, logger *log.Logger) *Generator {
	return &Generator{
		completer: completer,
		log:       logger.With("component", "generator"),
	}
}

// Generate returns a complete grounded answer. With an empty context it
// returns RefusalText without calling the model.
func (g *Generator) Generate(ctx context.Context, query string, contextItems []models.ContextItem) (string, error) {
	if len(contextItems) == 0 {
		return RefusalText, nil
	}

	answer, err := g.completer.Complete(ctx, g.messages(query, contextItems), llm.Options{Temperature: 0.3})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// GenerateStream returns the answer as a live token stream. With an empty
// context it yields RefusalText once and closes, without calling the model.
func (g *Generator) GenerateStream(ctx context.Context, query string, contextItems []models.ContextItem) (<-chan string, error) {
	if len(contextItems) == 0 {
		out := make(chan string, 1)
		out <- RefusalText
		close(out)
		return out, nil
	}

	stream, err := g.completer.CompleteStream(ctx, g.messages(query, contextItems), llm.Options{Temperature: 0.3})
	if err != nil {
		return nil, fmt.Errorf("generate answer stream: %w", err)
	}
	return stream, nil
}

func (g *Generator) messages(query string, contextItems []models.ContextItem) []llm.Message {
	return []llm.Message{
		llm.System(systemPrompt),
		llm.User(fmt.Sprintf(generateUserPrompt, query, groundingBlock(contextItems))),
	}
}

// groundingBlock concatenates retrieved passages with their structural
// citations as the sole permitted factual basis for the answer.
func groundingBlock(contextItems []models.ContextItem) string {
	parts := make([]string, len(contextItems))
	for i, item := range contextItems {
		source := item.Metadata.Source
		if source == "" {
			source = "Unknown"
		}
		hierarchy := item.Metadata.FullContext
		if hierarchy == "" {
			hierarchy = "No context path"
		}
		parts[i] = fmt.Sprintf("[[Источник: %s | Структура: %s]]\nТекст: %s", source, hierarchy, item.Content)
	}
	return strings.Join(parts, "\n\n")
}
