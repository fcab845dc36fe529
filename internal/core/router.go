// ABOUTME: Dialogue router deciding between clarification and retrieval
// ABOUTME: Fails closed to "no clarification, use original query"
package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

// Router decides whether a turn is answerable as-is or needs a clarifying
// question, folding prior turns into a self-contained rewritten query.
type Router struct {
	completer     Completer
	historyWindow int
	log           *log.Logger
}

// NewRouter creates a Router considering the last historyWindow turns.
func NewRouter(completer Completer, historyWindow int, logger *log.Logger) *Router {
	return &Router{
		completer:     completer,
		historyWindow: historyWindow,
		log:           logger.With("component", "router"),
	}
}

// routerResponse is the trust-boundary decode target for the model's JSON.
// Nullable fields map to pointers so that JSON null and absence both
// decode cleanly.
type routerResponse struct {
	NeedsClarification    bool    `json:"needs_clarification"`
	ClarificationQuestion *string `json:"clarification_question"`
	RewrittenQuery        *string `json:"rewritten_query"`
}

// Route analyzes the query against recent history. Any upstream failure
// degrades to proceeding with the original query; routing never blocks
// the pipeline.
func (r *Router) Route(ctx context.Context, query string, history []models.Turn) models.Outcome[models.ClarificationDecision] {
	prompt := fmt.Sprintf(routerPrompt, formatHistory(models.LastN(history, r.historyWindow)), query)

	raw, err := r.completer.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.Options{
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		r.log.Warn("routing failed, proceeding with original query", "error", err)
		return models.Degrade(models.Proceed(query), fmt.Sprintf("router call failed: %v", err))
	}

	decision, err := parseRouterResponse(raw, query)
	if err != nil {
		r.log.Warn("routing output malformed, proceeding with original query", "error", err)
		return models.Degrade(models.Proceed(query), fmt.Sprintf("router output malformed: %v", err))
	}
	return models.Ok(decision)
}

// parseRouterResponse decodes and validates the model output, normalizing
// it into a decision that satisfies the one-of invariant.
func parseRouterResponse(raw, originalQuery string) (models.ClarificationDecision, error) {
	var resp routerResponse
	if err := json.Unmarshal([]byte(llm.StripJSONFences(raw)), &resp); err != nil {
		return models.ClarificationDecision{}, fmt.Errorf("decode router JSON: %w", err)
	}

	if resp.NeedsClarification {
		if resp.ClarificationQuestion == nil || *resp.ClarificationQuestion == "" {
			return models.ClarificationDecision{}, fmt.Errorf("clarification requested without a question")
		}
		return models.Clarify(*resp.ClarificationQuestion), nil
	}

	rewritten := originalQuery
	if resp.RewrittenQuery != nil && *resp.RewrittenQuery != "" {
		rewritten = *resp.RewrittenQuery
	}
	return models.Proceed(rewritten), nil
}

// formatHistory renders turns the way the router prompt expects.
func formatHistory(turns []models.Turn) string {
	var out string
	for _, t := range turns {
		role := "User"
		if t.Role == models.RoleAssistant {
			role = "Assistant"
		}
		out += fmt.Sprintf("%s: %s\n", role, t.Content)
	}
	return out
}
