// ABOUTME: Orchestrator sequencing the full query-answering pipeline
// ABOUTME: Routing, classification, retrieval, generation, audit, delivery
package core

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abzhanov/npa-consultant/internal/models"
)

// Options controls one call to the public entry point.
type Options struct {
	UseHyde           bool
	UseSelfCorrection bool
	Stream            bool
}

// Agent is the public entry point of the consultant pipeline. All service
// handles are injected at construction; there is no ambient state.
type Agent struct {
	router     *Router
	classifier *Classifier
	retriever  *Retriever
	generator  *Generator
	auditor    *Auditor
	log        *log.Logger
}

// NewAgent wires the pipeline components together.
func NewAgent(router *Router, classifier *Classifier, retriever *Retriever, generator *Generator, auditor *Auditor, logger *log.Logger) *Agent {
	return &Agent{
		router:     router,
		classifier: classifier,
		retriever:  retriever,
		generator:  generator,
		auditor:    auditor,
		log:        logger.With("component", "agent"),
	}
}

// Answer runs one request/response cycle. It always returns a usable
// AnswerResult: upstream failures degrade to safe defaults and are
// logged, never surfaced to the caller.
func (a *Agent) Answer(ctx context.Context, query string, history []models.Turn, opts Options) *models.AnswerResult {
	logger := a.log.With("request", uuid.NewString()[:8])

	route := a.router.Route(ctx, query, history)
	if route.Degraded {
		logger.Warn("router degraded", "reason", route.Reason)
	}
	if route.Value.NeedsClarification {
		logger.Info("clarification needed, short-circuiting")
		return &models.AnswerResult{
			Answer:   models.Buffered(route.Value.ClarificationQuestion),
			Category: models.CategoryClarification,
		}
	}

	searchQuery := route.Value.RewrittenQuery
	logger.Info("processing query", "query", searchQuery)

	classified := a.classifier.Classify(ctx, searchQuery)
	if classified.Degraded {
		logger.Warn("classifier degraded", "reason", classified.Reason)
	}
	category := classified.Value
	logger.Info("classified", "category", category)

	contextItems := a.retriever.Retrieve(ctx, searchQuery, category, opts.UseHyde)
	logger.Info("retrieved context", "passages", len(contextItems))

	// Auditing needs the complete answer first, so generation is buffered
	// and streaming, if requested, is simulated from the audited text.
	if opts.UseSelfCorrection && len(contextItems) > 0 {
		final := a.generateAudited(ctx, searchQuery, contextItems, logger)

		answer := models.Buffered(final)
		if opts.Stream {
			answer = models.Streamed(SimulateStream(final))
		}
		return &models.AnswerResult{Answer: answer, Category: category, Context: contextItems}
	}

	return &models.AnswerResult{
		Answer:   a.generateDirect(ctx, searchQuery, contextItems, opts.Stream, logger),
		Category: category,
		Context:  contextItems,
	}
}

// generateAudited runs the generator in full-buffering mode followed by
// the self-correction pass.
func (a *Agent) generateAudited(ctx context.Context, query string, contextItems []models.ContextItem, logger *log.Logger) string {
	initial, err := a.generator.Generate(ctx, query, contextItems)
	if err != nil {
		logger.Warn("generation failed, degrading to refusal", "error", err)
		return RefusalText
	}

	audited := a.auditor.Audit(ctx, query, initial, contextItems)
	if audited.Degraded {
		logger.Warn("auditor degraded", "reason", audited.Reason)
	}
	return audited.Value
}

// generateDirect runs the generator honoring the stream option, with no
// audit pass.
func (a *Agent) generateDirect(ctx context.Context, query string, contextItems []models.ContextItem, stream bool, logger *log.Logger) models.Answer {
	if stream {
		ch, err := a.generator.GenerateStream(ctx, query, contextItems)
		if err != nil {
			logger.Warn("streamed generation failed, degrading to refusal", "error", err)
			return models.Streamed(SimulateStream(RefusalText))
		}
		return models.Streamed(ch)
	}

	text, err := a.generator.Generate(ctx, query, contextItems)
	if err != nil {
		logger.Warn("generation failed, degrading to refusal", "error", err)
		return models.Buffered(RefusalText)
	}
	return models.Buffered(text)
}
