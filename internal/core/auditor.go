// ABOUTME: Self-correction auditor checking answers against their context
// ABOUTME: "OK" keeps the answer verbatim; otherwise a rewrite replaces it
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// okWindow is how much of the verdict head is scanned for the OK token.
const okWindow = 10

// Auditor verifies a generated answer against the retrieved context and
// rewrites it when unsupported claims are found.
type Auditor struct {
	completer    Completer
	contextLimit int
	log          *log.Logger
}

// NewAuditor creates an Auditor. contextLimit bounds how many characters
// of context are sent with the audit request.
func NewAuditor(completer Completer, contextLimit int, logger *log.Logger) *Auditor {
	return &Auditor{
		completer:    completer,
		contextLimit: contextLimit,
		log:          logger.With("component", "auditor"),
	}
}

// Audit returns the final answer text: the original when the model judges
// it faithful, a corrected replacement otherwise. Audit failure is
// non-fatal and degrades to the original unaudited answer.
func (a *Auditor) Audit(ctx context.Context, query, answer string, contextItems []models.ContextItem) models.Outcome[string] {
	prompt := fmt.Sprintf(auditPrompt, query, a.contextText(contextItems), answer)

	verdict, err := a.completer.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Temperature: 0.1})
	if err != nil {
		a.log.Warn("audit failed, keeping unaudited answer", "error", err)
		return models.Degrade(answer, fmt.Sprintf("audit call failed: %v", err))
	}

	if isOKVerdict(verdict) {
		return models.Ok(answer)
	}

	a.log.Info("self-correction triggered, rewriting answer")
	return models.Ok(verdict)
}

// isOKVerdict reports whether the verdict head contains the OK sentinel.
func isOKVerdict(verdict string) bool {
	head := verdict
	if len(head) > okWindow {
		head = head[:okWindow]
	}
	return strings.Contains(head, "OK")
}

// contextText joins passage contents, truncated to the configured limit
// to respect model input bounds.
func (a *Auditor) contextText(contextItems []models.ContextItem) string {
	parts := make([]string, len(contextItems))
	for i, item := range contextItems {
		parts[i] = item.Content
	}
	joined := strings.Join(parts, "\n")

	runes := []rune(joined)
	if len(runes) > a.contextLimit {
		return string(runes[:a.contextLimit])
	}
	return joined
}
