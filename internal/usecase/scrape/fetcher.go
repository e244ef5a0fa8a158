package scrape

import (
	"context"
	"time"

	"newspulse/internal/domain/entity"
)

// RawArticle is one item as produced by a source adapter, before
// classification, tone scoring, and validation.
type RawArticle struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time

	// Category is set when the source pin or the provider already decided
	// it; empty means the classifier runs.
	Category entity.Category

	// Tone is the provider-supplied tone. When HasTone is false the
	// lexical scorer computes the tone from the title instead.
	Tone    float64
	HasTone bool

	Location *entity.Location
}

// SourceFetcher fetches raw articles for one configured source.
// Implementations own their transport, retries, and circuit breaking;
// a returned error means this source produced nothing this tick.
type SourceFetcher interface {
	Fetch(ctx context.Context, src entity.Source) ([]RawArticle, error)
}
