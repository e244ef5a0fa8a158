// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and TrendingTopic, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a single normalized news article.
// Articles are immutable once produced by a scrape tick; the URL is the
// external identity within a cache generation.
type Article struct {
	URL         string
	Title       string
	Source      string
	Category    Category
	PublishedAt time.Time
	Tone        float64
	Location    *Location
}

// Location is an optional geocoding attached to an article when the
// upstream provider supplies one.
type Location struct {
	Country   string
	Latitude  float64
	Longitude float64
}

// Validate checks the article invariants: a non-empty title, a well-formed
// absolute http/https URL, a known category, and a tone within [-1, 1].
// Records failing validation are dropped before entering the cache.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	if !a.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category: " + string(a.Category)}
	}
	if a.Tone < -1 || a.Tone > 1 {
		return &ValidationError{Field: "tone", Message: "must be within [-1, 1]"}
	}
	return nil
}
