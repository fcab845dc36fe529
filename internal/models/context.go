// ABOUTME: Retrieved passage types returned by the corpus store and retriever
// ABOUTME: ContextItems are immutable once returned and live only for one request
package models

// PassageMeta is the hierarchical metadata attached to every indexed passage.
// FullContext is a breadcrumb into the source document's outline,
// e.g. "Раздел 2 > Глава 3 > Статья 15".
type PassageMeta struct {
	Source      string `json:"source"`
	FullContext string `json:"full_context"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Page        int    `json:"page,omitempty"`
}

// ContextItem is one retrieved passage with its relevance measure.
// Distance carries the vector distance (lower is better) in the default
// ranking mode, or a cross-encoder score (higher is better) when a
// re-ranker is configured. Nil means the backend reported no measure.
type ContextItem struct {
	Content  string      `json:"content"`
	Metadata PassageMeta `json:"metadata"`
	Distance *float64    `json:"distance"`
}

// DistanceOr returns the item's distance, or def when none was reported.
func (c ContextItem) DistanceOr(def float64) float64 {
	if c.Distance == nil {
		return def
	}
	return *c.Distance
}
