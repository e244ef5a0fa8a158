package classify

import "newspulse/internal/domain/entity"

// weightedKeyword pairs a lower-case phrase with its classification weight.
type weightedKeyword struct {
	phrase string
	weight int
}

// categoryKeywords maps each category to its weighted keyword phrases.
// Matching is case-insensitive substring matching against the title.
var categoryKeywords = map[entity.Category][]weightedKeyword{
	entity.CategoryWorld: {
		{"international", 2}, {"global", 2}, {"world", 2}, {"foreign", 1},
	},
	entity.CategoryPolitics: {
		{"politics", 2}, {"election", 2}, {"government", 1}, {"policy", 1},
	},
	entity.CategoryBusiness: {
		{"business", 2}, {"economy", 2}, {"market", 1}, {"trade", 1},
	},
	entity.CategoryTechnology: {
		{"technology", 2}, {"tech", 2}, {"digital", 1}, {"software", 1},
	},
	entity.CategoryScience: {
		{"science", 2}, {"research", 2}, {"study", 1}, {"discovery", 1},
	},
	entity.CategoryHealth: {
		{"health", 2}, {"medical", 2}, {"healthcare", 1}, {"disease", 1},
	},
	entity.CategorySports: {
		{"sports", 2}, {"game", 1}, {"tournament", 1}, {"championship", 1},
	},
	entity.CategoryEntertainment: {
		{"entertainment", 2}, {"movie", 1}, {"music", 1}, {"celebrity", 1},
	},
	entity.CategoryProperty: {
		{"property", 2}, {"real estate", 2}, {"housing", 1}, {"mortgage", 1},
	},
	entity.CategoryFinance: {
		{"finance", 2}, {"banking", 2}, {"investment", 1}, {"stocks", 1},
	},
	entity.CategoryInsurance: {
		{"insurance", 2}, {"coverage", 1}, {"policy", 1}, {"risk", 1},
	},
	entity.CategoryAI: {
		{"ai", 2}, {"artificial intelligence", 2}, {"machine learning", 1},
	},
	entity.CategoryEnvironment: {
		{"environment", 2}, {"climate", 2}, {"sustainable", 1},
	},
	entity.CategoryEducation: {
		{"education", 2}, {"school", 1}, {"university", 1}, {"learning", 1},
	},
	entity.CategoryAutomotive: {
		{"automotive", 2}, {"car", 1}, {"vehicle", 1}, {"electric", 1},
	},
}

// toneWords is the fixed sentiment lexicon. Weights accumulate across
// matches and the sum is clamped to [-1, 1].
var toneWords = []struct {
	word   string
	weight float64
}{
	{"excellent", 0.8},
	{"breakthrough", 0.7},
	{"success", 0.6},
	{"innovative", 0.5},
	{"growth", 0.4},
	{"improvement", 0.3},
	{"crisis", -0.8},
	{"disaster", -0.7},
	{"failure", -0.6},
	{"decline", -0.5},
	{"warning", -0.4},
	{"concern", -0.3},
}
