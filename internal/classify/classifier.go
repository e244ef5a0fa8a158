// Package classify derives topic categories and tone scores from article
// titles using weighted lexical matching. Both operations are pure and
// total: they never fail and always return a value from their bounded range.
package classify

import (
	"strings"

	"newspulse/internal/domain/entity"
)

// Classify assigns one category to a title by summing the weights of all
// configured keyword phrases found in it (case-insensitive substring match).
// The category with the strictly highest total wins. Ties among non-zero
// scores break by category declaration order (first declared wins); an
// all-zero result defaults to World.
func Classify(title string) entity.Category {
	lower := strings.ToLower(title)

	best := entity.CategoryWorld
	bestScore := 0
	for _, category := range entity.Categories {
		score := 0
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lower, kw.phrase) {
				score += kw.weight
			}
		}
		// Strict inequality keeps the earlier-declared category on a tie.
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	return best
}
