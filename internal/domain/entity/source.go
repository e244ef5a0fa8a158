package entity

import (
	"errors"
	"fmt"
)

// Source types routed to the corresponding adapter.
const (
	SourceTypeRSS       = "RSS"
	SourceTypeHTML      = "HTML"
	SourceTypeGDELT     = "GDELT"
	SourceTypeNewsAPI   = "NewsAPI"
	SourceTypeSynthetic = "Synthetic"
)

// Source describes one configured news source. The engine treats every
// transport shape (feed, scraped HTML, search-style API, synthetic data)
// as an interchangeable variant behind the same adapter contract, selected
// by SourceType.
type Source struct {
	Name       string `yaml:"name"`
	SourceType string `yaml:"type"`
	URL        string `yaml:"url"`

	// Query carries the provider query string for search-style sources.
	Query string `yaml:"query,omitempty"`

	// Category optionally pins every article from this source to one
	// category, bypassing the classifier (feeds dedicated to one topic).
	Category Category `yaml:"category,omitempty"`

	// ScraperConfig holds the CSS selectors for HTML sources.
	ScraperConfig *ScraperConfig `yaml:"selectors,omitempty"`

	// APIKeyEnv names the environment variable holding the provider key.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// ScraperConfig holds the selector configuration for HTML scraping sources.
type ScraperConfig struct {
	ItemSelector  string `yaml:"item"`
	TitleSelector string `yaml:"title"`
	URLSelector   string `yaml:"link"`
	TimeSelector  string `yaml:"time"`

	// BaseURL resolves relative article links; defaults to the source URL.
	BaseURL string `yaml:"base_url,omitempty"`
}

// Validate validates the Source fields.
// An empty source type defaults to RSS for backward compatibility.
func (s *Source) Validate() error {
	if s.Name == "" {
		return errors.New("source name is required")
	}

	if s.SourceType == "" {
		s.SourceType = SourceTypeRSS
	}

	validTypes := map[string]bool{
		SourceTypeRSS:       true,
		SourceTypeHTML:      true,
		SourceTypeGDELT:     true,
		SourceTypeNewsAPI:   true,
		SourceTypeSynthetic: true,
	}
	if !validTypes[s.SourceType] {
		return fmt.Errorf("invalid source type: %s (must be RSS, HTML, GDELT, NewsAPI, or Synthetic)", s.SourceType)
	}

	if s.SourceType != SourceTypeSynthetic && s.URL == "" {
		return fmt.Errorf("source %s: url is required", s.Name)
	}

	if s.SourceType == SourceTypeHTML && s.ScraperConfig == nil {
		return errors.New("selectors are required for HTML sources")
	}

	if s.Category != "" && !s.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category: " + string(s.Category)}
	}

	return nil
}
