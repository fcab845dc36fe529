// ABOUTME: Retriever issuing scoped and global corpus searches
// ABOUTME: Merges, deduplicates by content, ranks, truncates to top-K
package core

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/models"
	"github.com/abzhanov/npa-consultant/internal/store"
)

// CorpusSearcher is the context-store contract the retriever depends on.
// *store.Store satisfies it; tests substitute fakes.
type CorpusSearcher interface {
	Query(ctx context.Context, partition store.Partition, text string, topN int, categoryFilter string) ([]models.ContextItem, error)
}

// Reranker is a pluggable cross-encoder scoring capability. Higher scores
// mean better matches.
type Reranker interface {
	Score(ctx context.Context, query string, passages []string) ([]float64, error)
}

// Retriever turns a query and category into a ranked, deduplicated list
// of at most topK passages.
type Retriever struct {
	corpus   CorpusSearcher
	expander *Expander
	reranker Reranker
	initialK int
	topK     int
	log      *log.Logger
}

// NewRetriever creates a Retriever. expander may be nil to disable HyDE
// regardless of per-request options; reranker may be nil to rank by
// vector distance alone.
func NewRetriever(corpus CorpusSearcher, expander *Expander, reranker Reranker, initialK, topK int, logger *log.Logger) *Retriever {
	return &Retriever{
		corpus:   corpus,
		expander: expander,
		reranker: reranker,
		initialK: initialK,
		topK:     topK,
		log:      logger.With("component", "retriever"),
	}
}

// Retrieve searches the corpus for passages relevant to query.
//
// Category-scoped searches run against both partitions unless category is
// the general one; the global fallback search of the regulations
// partition always runs unscoped to recover misclassified or
// cross-cutting material. An empty result is a valid outcome, not an
// error: individual search failures are logged and skipped so a degraded
// corpus still answers what it can.
func (r *Retriever) Retrieve(ctx context.Context, query string, category models.Category, useHyde bool) []models.ContextItem {
	searchText := query
	if useHyde && r.expander != nil {
		expansion := r.expander.Expand(ctx, query)
		searchText = expansion.Value
	}

	var candidates []models.ContextItem

	if category != models.CategoryGeneral {
		candidates = append(candidates, r.search(ctx, store.PartitionRegulations, searchText, string(category))...)
		candidates = append(candidates, r.search(ctx, store.PartitionInstructions, searchText, string(category))...)
	}

	// Global fallback: some passages live under one category but answer
	// questions from another.
	candidates = append(candidates, r.search(ctx, store.PartitionRegulations, searchText, "")...)

	candidates = dedupeByContent(candidates)
	if len(candidates) == 0 {
		return nil
	}

	r.rank(ctx, query, candidates)

	if len(candidates) > r.topK {
		candidates = candidates[:r.topK]
	}
	return candidates
}

func (r *Retriever) search(ctx context.Context, partition store.Partition, text, categoryFilter string) []models.ContextItem {
	items, err := r.corpus.Query(ctx, partition, text, r.initialK, categoryFilter)
	if err != nil {
		r.log.Warn("corpus search failed, skipping",
			"partition", partition, "category", categoryFilter, "error", err)
		return nil
	}
	return items
}

// dedupeByContent drops candidates with identical content, keeping the
// instance with the lower distance when both report one; otherwise the
// first seen wins. Input order is preserved for the survivors.
func dedupeByContent(candidates []models.ContextItem) []models.ContextItem {
	byContent := make(map[string]int, len(candidates))
	var unique []models.ContextItem

	for _, c := range candidates {
		idx, seen := byContent[c.Content]
		if !seen {
			byContent[c.Content] = len(unique)
			unique = append(unique, c)
			continue
		}
		kept := unique[idx]
		if c.Distance != nil && kept.Distance != nil && *c.Distance < *kept.Distance {
			unique[idx] = c
		}
	}
	return unique
}

// rank orders candidates in place: ascending by distance, or descending
// by cross-encoder score when a reranker is configured. A reranker
// failure falls back to the distance ordering.
func (r *Retriever) rank(ctx context.Context, query string, candidates []models.ContextItem) {
	if r.reranker != nil {
		passages := make([]string, len(candidates))
		for i, c := range candidates {
			passages[i] = c.Content
		}
		scores, err := r.reranker.Score(ctx, query, passages)
		if err == nil && len(scores) == len(candidates) {
			for i := range candidates {
				s := scores[i]
				candidates[i].Distance = &s
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				return *candidates[i].Distance > *candidates[j].Distance
			})
			return
		}
		r.log.Warn("rerank failed, falling back to distance ordering", "error", err)
	}

	// Items without a distance sort last.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceOr(1.0) < candidates[j].DistanceOr(1.0)
	})
}
