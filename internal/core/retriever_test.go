// ABOUTME: Tests for the retriever's merge, dedupe, rank, and truncate steps
// ABOUTME: Covers scoped vs global search plans and the re-ranker mode
package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/abzhanov/npa-consultant/internal/models"
	"github.com/abzhanov/npa-consultant/internal/store"
)

func TestRetriever_ScopedCategorySearchPlan(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	retriever.Retrieve(context.Background(), "вопрос", models.CategoryLease, false)

	want := []corpusCall{
		{Partition: store.PartitionRegulations, Text: "вопрос", TopN: 150, Category: "Аренда"},
		{Partition: store.PartitionInstructions, Text: "вопрос", TopN: 150, Category: "Аренда"},
		{Partition: store.PartitionRegulations, Text: "вопрос", TopN: 150, Category: ""},
	}
	if len(corpus.calls) != len(want) {
		t.Fatalf("search calls = %d, want %d", len(corpus.calls), len(want))
	}
	for i, call := range corpus.calls {
		if call != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, call, want[i])
		}
	}
}

func TestRetriever_GeneralCategorySkipsScopedSearches(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	retriever.Retrieve(context.Background(), "вопрос", models.CategoryGeneral, false)

	if len(corpus.calls) != 1 {
		t.Fatalf("search calls = %d, want 1 (global only)", len(corpus.calls))
	}
	if corpus.calls[0].Category != "" || corpus.calls[0].Partition != store.PartitionRegulations {
		t.Errorf("call = %+v, want unscoped regulations search", corpus.calls[0])
	}
}

func TestRetriever_DedupeKeepsLowerDistance(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, "Аренда"): {item("одинаковый текст", 0.3)},
		corpusKey(store.PartitionRegulations, ""):       {item("одинаковый текст", 0.1)},
	}}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryLease, false)

	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if *got[0].Distance != 0.1 {
		t.Errorf("surviving distance = %v, want 0.1", *got[0].Distance)
	}
}

func TestRetriever_TruncatesToTopK(t *testing.T) {
	var items []models.ContextItem
	for i := 0; i < 12; i++ {
		items = append(items, item(fmt.Sprintf("пассаж %d", i), float64(12-i)*0.05))
	}
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): items,
	}}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryGeneral, false)

	if len(got) != 5 {
		t.Fatalf("len(result) = %d, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].Distance > *got[i].Distance {
			t.Errorf("result not sorted ascending at %d: %v > %v", i, *got[i-1].Distance, *got[i].Distance)
		}
	}
}

func TestRetriever_EmptyCorpusReturnsEmpty(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryTransfer, false)

	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0", len(got))
	}
}

func TestRetriever_SearchFailureIsSkipped(t *testing.T) {
	corpus := &fakeCorpus{err: fmt.Errorf("store rebuilding")}
	retriever := NewRetriever(corpus, nil, nil, 150, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryTransfer, false)

	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0 when every search fails", len(got))
	}
}

func TestRetriever_HydeReplacesSearchText(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{}}
	completer := &fakeCompleter{responses: []string{"гипотетический документ"}}
	expander := NewExpander(completer, testLogger())
	retriever := NewRetriever(corpus, expander, nil, 150, 5, testLogger())

	retriever.Retrieve(context.Background(), "вопрос", models.CategoryGeneral, true)

	if corpus.calls[0].Text != "гипотетический документ" {
		t.Errorf("search text = %q, want the HyDE expansion", corpus.calls[0].Text)
	}
}

type fakeReranker struct {
	scores []float64
	err    error
}

func (f *fakeReranker) Score(ctx context.Context, query string, passages []string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores[:len(passages)], nil
}

func TestRetriever_RerankerSortsDescending(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {
			item("первый", 0.1),
			item("второй", 0.2),
			item("третий", 0.3),
		},
	}}
	reranker := &fakeReranker{scores: []float64{0.2, 0.9, 0.5}}
	retriever := NewRetriever(corpus, nil, reranker, 20, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryGeneral, false)

	if len(got) != 3 {
		t.Fatalf("len(result) = %d, want 3", len(got))
	}
	wantOrder := []string{"второй", "третий", "первый"}
	for i, want := range wantOrder {
		if got[i].Content != want {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Content, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].Distance < *got[i].Distance {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRetriever_RerankerFailureFallsBackToDistance(t *testing.T) {
	corpus := &fakeCorpus{results: map[string][]models.ContextItem{
		corpusKey(store.PartitionRegulations, ""): {
			item("дальний", 0.8),
			item("ближний", 0.2),
		},
	}}
	reranker := &fakeReranker{err: fmt.Errorf("model unavailable")}
	retriever := NewRetriever(corpus, nil, reranker, 20, 5, testLogger())

	got := retriever.Retrieve(context.Background(), "вопрос", models.CategoryGeneral, false)

	if got[0].Content != "ближний" {
		t.Errorf("result[0] = %q, want distance ordering on rerank failure", got[0].Content)
	}
}
