package scraper

import (
	"net/http"

	"newspulse/internal/domain/entity"
	"newspulse/internal/ratelimit"
	"newspulse/internal/usecase/scrape"
)

// NewFetchers creates the full adapter set, keyed by source type.
// The scrape service uses this map to route each configured source to the
// right adapter. All network adapters share the same HTTP client and the
// same outbound rate gate.
func NewFetchers(client *http.Client, gate *ratelimit.Gate) map[string]scrape.SourceFetcher {
	return map[string]scrape.SourceFetcher{
		entity.SourceTypeRSS:       NewRSSFetcher(client, gate),
		entity.SourceTypeHTML:      NewHTMLScraper(client, gate),
		entity.SourceTypeGDELT:     NewGDELTFetcher(client, gate),
		entity.SourceTypeNewsAPI:   NewNewsAPIFetcher(client, gate),
		entity.SourceTypeSynthetic: NewSyntheticFetcher(),
	}
}
