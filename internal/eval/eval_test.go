// ABOUTME: Tests for the evaluation judge and dataset handling
// ABOUTME: Uses a scripted completer; no live model calls
package eval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
)

type fakeCompleter struct {
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, _ []llm.Message, _ llm.Options) (string, error) {
	return f.response, f.err
}

func TestJudgeEvaluate(t *testing.T) {
	judge := NewJudge(&fakeCompleter{response: `{"score": 4, "explanation": "mostly correct"}`})

	v, err := judge.Evaluate(context.Background(), "вопрос", "ответ", "эталон")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v.Score != 4 {
		t.Errorf("Score = %d, want 4", v.Score)
	}
	if v.Explanation != "mostly correct" {
		t.Errorf("Explanation = %q, want %q", v.Explanation, "mostly correct")
	}
}

func TestJudgeEvaluate_FencedJSON(t *testing.T) {
	judge := NewJudge(&fakeCompleter{response: "```json\n{\"score\": 5, \"explanation\": \"exact\"}\n```"})

	v, err := judge.Evaluate(context.Background(), "вопрос", "ответ", "эталон")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v.Score != 5 {
		t.Errorf("Score = %d, want 5", v.Score)
	}
}

func TestJudgeEvaluate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"completion error", "", errors.New("boom")},
		{"malformed json", "not json at all", nil},
		{"score too low", `{"score": 0, "explanation": "x"}`, nil},
		{"score too high", `{"score": 6, "explanation": "x"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge := NewJudge(&fakeCompleter{response: tt.response, err: tt.err})
			if _, err := judge.Evaluate(context.Background(), "q", "a", "gt"); err == nil {
				t.Error("Evaluate() should fail")
			}
		})
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	data := `[
		{
			"question": "Как передать имущество?",
			"ground_truth": "Через акт приема-передачи.",
			"source_metadata": {
				"source": "Закон №123",
				"full_context": "Статья 5 > Пункт 2",
				"category": "Передача",
				"type": "text"
			}
		}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("LoadDataset() returned %d items, want 1", len(items))
	}
	if items[0].Question != "Как передать имущество?" {
		t.Errorf("Question = %q", items[0].Question)
	}
	if items[0].SourceMetadata.FullContext != "Статья 5 > Пункт 2" {
		t.Errorf("SourceMetadata.FullContext = %q", items[0].SourceMetadata.FullContext)
	}
}

func TestLoadDataset_Errors(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadDataset() with missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDataset(path); err == nil {
		t.Error("LoadDataset() with malformed JSON should fail")
	}
}

func TestRetrievalHit(t *testing.T) {
	golden := models.PassageMeta{Source: "Закон №123", FullContext: "Статья 5 > Пункт 2"}

	retrieved := []models.ContextItem{
		{Metadata: models.PassageMeta{Source: "Закон №456", FullContext: "Статья 1"}},
		{Metadata: models.PassageMeta{Source: "Закон №123", FullContext: "Статья 5 > Пункт 2"}},
	}
	if !retrievalHit(retrieved, golden) {
		t.Error("retrievalHit() = false, want true when source and path match")
	}

	// Same source, different structural path is not a hit.
	miss := []models.ContextItem{
		{Metadata: models.PassageMeta{Source: "Закон №123", FullContext: "Статья 6"}},
	}
	if retrievalHit(miss, golden) {
		t.Error("retrievalHit() = true, want false for a different path")
	}

	if retrievalHit(nil, golden) {
		t.Error("retrievalHit() = true for empty retrieval")
	}
}
