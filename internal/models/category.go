// ABOUTME: Closed category set for state-property queries
// ABOUTME: Classifier output always resolves to a member of this set
package models

import "strings"

// Category is one of the fixed topical categories used to scope retrieval.
type Category string

const (
	CategoryGeneral       Category = "Общий"
	CategoryTransfer      Category = "Передача"
	CategoryDonation      Category = "Дарение"
	CategoryWriteOff      Category = "Списание"
	CategoryLease         Category = "Аренда"
	CategoryPrivatization Category = "Приватизация"
	CategoryReporting     Category = "Эффективность управления (отчетность)"

	// CategoryClarification is not a retrieval scope; it marks the
	// clarification short-circuit in an AnswerResult.
	CategoryClarification Category = "Уточнение"
)

// DefaultCategory is returned when classification cannot produce a
// recognized label. Transfers are the most common query topic.
const DefaultCategory = CategoryTransfer

// Categories returns the classifiable category set, in prompt order.
func Categories() []Category {
	return []Category{
		CategoryTransfer,
		CategoryDonation,
		CategoryWriteOff,
		CategoryLease,
		CategoryPrivatization,
		CategoryReporting,
	}
}

// MatchCategory fuzzy-matches raw model output against the known category
// labels by substring containment, tolerating surrounding prose and
// formatting drift. Returns false when no label is found.
func MatchCategory(raw string) (Category, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, cat := range Categories() {
		if strings.Contains(raw, string(cat)) {
			return cat, true
		}
	}
	return "", false
}
