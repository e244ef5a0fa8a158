package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"newspulse/internal/domain/entity"
)

// sourcesFileEnv points at an optional YAML catalog overriding the built-in
// source list.
const sourcesFileEnv = "SOURCES_FILE"

type sourcesFile struct {
	Sources []entity.Source `yaml:"sources"`
}

// LoadSources loads the source catalog. When SOURCES_FILE is set the YAML
// file it names replaces the built-in catalog entirely; otherwise the
// built-in catalog is returned. Every source is validated, and a catalog
// with any invalid source is rejected as a whole.
func LoadSources() ([]entity.Source, error) {
	path := os.Getenv(sourcesFileEnv)
	if path == "" {
		return DefaultSources(), nil
	}
	return LoadSourcesFromFile(path)
}

// LoadSourcesFromFile loads and validates a YAML source catalog.
// The path is expected to come from a trusted source (environment variable
// or command-line argument).
func LoadSourcesFromFile(path string) ([]entity.Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from deployment config
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s: no sources defined", path)
	}

	for i := range file.Sources {
		if err := file.Sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("sources file %s: source %d: %w", path, i, err)
		}
	}

	return file.Sources, nil
}

// DefaultSources returns the built-in source catalog: HTML front pages of
// major outlets, a few RSS feeds with pinned categories, the GDELT document
// API, an optional NewsAPI source, and a synthetic fallback source that
// keeps the engine serving data when every network source fails.
func DefaultSources() []entity.Source {
	return []entity.Source{
		{
			Name:       "Reuters",
			SourceType: entity.SourceTypeHTML,
			URL:        "https://www.reuters.com",
			ScraperConfig: &entity.ScraperConfig{
				ItemSelector:  `article[data-testid="story"]`,
				TitleSelector: ".story-content__headline__text",
				URLSelector:   "a.story-content__link",
				TimeSelector:  "time",
			},
		},
		{
			Name:       "BBC News",
			SourceType: entity.SourceTypeHTML,
			URL:        "https://www.bbc.com/news",
			ScraperConfig: &entity.ScraperConfig{
				ItemSelector:  "article",
				TitleSelector: "h3",
				URLSelector:   "a",
				TimeSelector:  "time",
			},
		},
		{
			Name:       "The Guardian",
			SourceType: entity.SourceTypeHTML,
			URL:        "https://www.theguardian.com/international",
			ScraperConfig: &entity.ScraperConfig{
				ItemSelector:  ".fc-item--standard",
				TitleSelector: ".fc-item__title",
				URLSelector:   ".fc-item__link",
				TimeSelector:  "time",
			},
		},
		{
			Name:       "Bloomberg",
			SourceType: entity.SourceTypeHTML,
			URL:        "https://www.bloomberg.com",
			ScraperConfig: &entity.ScraperConfig{
				ItemSelector:  `article[data-type="article"]`,
				TitleSelector: "h3",
				URLSelector:   "a",
				TimeSelector:  "time",
			},
		},
		{
			Name:       "Financial Times",
			SourceType: entity.SourceTypeHTML,
			URL:        "https://www.ft.com",
			ScraperConfig: &entity.ScraperConfig{
				ItemSelector:  ".o-teaser",
				TitleSelector: ".o-teaser__heading",
				URLSelector:   ".o-teaser__heading-link",
				TimeSelector:  "time",
			},
		},
		{
			Name:       "BBC World RSS",
			SourceType: entity.SourceTypeRSS,
			URL:        "http://feeds.bbci.co.uk/news/world/rss.xml",
			Category:   entity.CategoryWorld,
		},
		{
			Name:       "NYT World RSS",
			SourceType: entity.SourceTypeRSS,
			URL:        "https://rss.nytimes.com/services/xml/rss/nyt/World.xml",
			Category:   entity.CategoryWorld,
		},
		{
			Name:       "TechCrunch RSS",
			SourceType: entity.SourceTypeRSS,
			URL:        "https://feeds.feedburner.com/TechCrunch",
			Category:   entity.CategoryTechnology,
		},
		{
			Name:       "Wired RSS",
			SourceType: entity.SourceTypeRSS,
			URL:        "https://www.wired.com/feed/rss",
			Category:   entity.CategoryTechnology,
		},
		{
			Name:       "Bloomberg Markets RSS",
			SourceType: entity.SourceTypeRSS,
			URL:        "https://feeds.bloomberg.com/markets/news.rss",
			Category:   entity.CategoryBusiness,
		},
		{
			Name:       "GDELT",
			SourceType: entity.SourceTypeGDELT,
			URL:        "https://api.gdeltproject.org/api/v2/doc/doc",
			Query:      "sourcelang:english",
		},
		{
			Name:       "NewsAPI",
			SourceType: entity.SourceTypeNewsAPI,
			URL:        "https://newsapi.org/v2/top-headlines",
			Query:      "language=en",
			APIKeyEnv:  "NEWSAPI_KEY",
		},
		{
			Name:       "Fallback",
			SourceType: entity.SourceTypeSynthetic,
		},
	}
}
