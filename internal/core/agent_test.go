// ABOUTME: End-to-end orchestrator tests with scripted fakes
// ABOUTME: Covers clarification short-circuit, refusal, audit, and streaming
package core

import (
	"context"
	"strings"
	"testing"

	"github.com/abzhanov/npa-consultant/internal/models"
	"github.com/abzhanov/npa-consultant/internal/store"
)

func newTestAgent(completer *fakeCompleter, corpus *fakeCorpus) *Agent {
	logger := testLogger()
	return NewAgent(
		NewRouter(completer, 5, logger),
		NewClassifier(completer, logger),
		NewRetriever(corpus, nil, nil, 150, 5, logger),
		NewGenerator(completer, logger),
		NewAuditor(completer, 15000, logger),
		logger,
	)
}

func TestAgent_ClarificationShortCircuit(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		`{"needs_clarification": true, "clarification_question": "Уточните, какое имущество вы хотите списать?"}`,
	}}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "списание", nil, Options{UseSelfCorrection: true})

	if result.Category != models.CategoryClarification {
		t.Errorf("Category = %v, want %v", result.Category, models.CategoryClarification)
	}
	if len(result.Context) != 0 {
		t.Errorf("Context length = %d, want 0", len(result.Context))
	}
	if result.Answer.IsStreamed() {
		t.Error("clarification answer should be buffered")
	}
	if result.Answer.Text() == "" {
		t.Error("clarification question is empty")
	}
	if completer.calls != 1 {
		t.Errorf("model calls = %d, want 1 (router only)", completer.calls)
	}
	if len(corpus.calls) != 0 {
		t.Errorf("corpus searches = %d, want 0", len(corpus.calls))
	}
}

func TestAgent_EmptyCorpusReturnsRefusalWithoutAudit(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		`{"needs_clarification": false, "rewritten_query": "как передать имущество из республиканской в коммунальную собственность"}`,
		"Передача",
	}}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "как передать имущество из республиканской в коммунальную собственность", nil, Options{UseSelfCorrection: true})

	if result.Category != models.CategoryTransfer {
		t.Errorf("Category = %v, want %v", result.Category, models.CategoryTransfer)
	}
	if len(result.Context) != 0 {
		t.Errorf("Context length = %d, want 0", len(result.Context))
	}
	if result.Answer.Text() != RefusalText {
		t.Errorf("Answer = %q, want refusal text", result.Answer.Text())
	}
	// Router + classifier only: the generator short-circuits on empty
	// context and the auditor never runs.
	if completer.calls != 2 {
		t.Errorf("model calls = %d, want 2", completer.calls)
	}
}

func TestAgent_AuditedAnswerSimulatedStream(t *testing.T) {
	answer := "Имущество передается по постановлению акимата (п. 10 Правил)."
	completer := &fakeCompleter{responses: []string{
		`{"needs_clarification": false, "rewritten_query": "как передать здание"}`,
		"Передача",
		answer,
		"OK",
	}}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {item("текст правил", 0.2)},
	}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "как передать здание", nil, Options{UseSelfCorrection: true, Stream: true})

	if !result.Answer.IsStreamed() {
		t.Fatal("answer should be streamed")
	}
	got := strings.TrimSuffix(result.Answer.Collect(), " ")
	if got != answer {
		t.Errorf("collected stream = %q, want the audited answer", got)
	}
	if completer.streamCalls != 0 {
		t.Errorf("live stream calls = %d, want 0 when auditing", completer.streamCalls)
	}
	if len(result.Context) != 1 {
		t.Errorf("Context length = %d, want 1", len(result.Context))
	}
}

func TestAgent_AuditRewriteReplacesAnswer(t *testing.T) {
	rewrite := "Исправленный ответ (ст. 15 Закона)."
	completer := &fakeCompleter{responses: []string{
		`{"needs_clarification": false, "rewritten_query": "как передать здание"}`,
		"Передача",
		"ответ с выдумкой",
		rewrite,
	}}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {item("текст правил", 0.2)},
	}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "как передать здание", nil, Options{UseSelfCorrection: true})

	if result.Answer.Text() != rewrite {
		t.Errorf("Answer = %q, want the audit rewrite", result.Answer.Text())
	}
}

func TestAgent_NoAuditLiveStreamPassthrough(t *testing.T) {
	completer := &fakeCompleter{
		responses: []string{
			`{"needs_clarification": false, "rewritten_query": "как передать здание"}`,
			"Передача",
		},
		streamChunks: []string{"Иму", "щество ", "передается."},
	}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {item("текст правил", 0.2)},
	}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "как передать здание", nil, Options{Stream: true})

	if !result.Answer.IsStreamed() {
		t.Fatal("answer should be streamed")
	}
	if got := result.Answer.Collect(); got != "Имущество передается." {
		t.Errorf("collected stream = %q, want the live generation", got)
	}
	if completer.streamCalls != 1 {
		t.Errorf("live stream calls = %d, want 1", completer.streamCalls)
	}
}

func TestAgent_GenerationFailureDegradesToRefusal(t *testing.T) {
	// The script ends after classification, so the generator call fails.
	completer := &fakeCompleter{responses: []string{
		`{"needs_clarification": false, "rewritten_query": "как передать здание"}`,
		"Передача",
	}}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {item("текст правил", 0.2)},
	}}
	agent := newTestAgent(completer, corpus)

	result := agent.Answer(context.Background(), "как передать здание", nil, Options{UseSelfCorrection: true})

	if result.Answer.Text() != RefusalText {
		t.Errorf("Answer = %q, want refusal text on generation failure", result.Answer.Text())
	}
}
