package classify

import "strings"

// Tone scores the sentiment of a title on a [-1, 1] scale.
// Every lexicon word found in the title (case-insensitive substring match)
// contributes its weight; the accumulated sum is clamped to the range.
// A title with no matches scores 0 (neutral).
func Tone(title string) float64 {
	lower := strings.ToLower(title)

	var tone float64
	for _, w := range toneWords {
		if strings.Contains(lower, w.word) {
			tone += w.weight
		}
	}

	return clamp(tone, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
