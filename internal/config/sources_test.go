package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"newspulse/internal/domain/entity"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if len(sources) == 0 {
		t.Fatal("DefaultSources() returned empty catalog")
	}

	types := map[string]bool{}
	for i := range sources {
		if err := sources[i].Validate(); err != nil {
			t.Errorf("source %s invalid: %v", sources[i].Name, err)
		}
		types[sources[i].SourceType] = true
	}

	for _, want := range []string{
		entity.SourceTypeRSS, entity.SourceTypeHTML,
		entity.SourceTypeGDELT, entity.SourceTypeSynthetic,
	} {
		if !types[want] {
			t.Errorf("catalog missing source type %s", want)
		}
	}
}

func TestLoadSourcesFromFile(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		path := writeSourcesFile(t, `
sources:
  - name: BBC World
    type: RSS
    url: http://feeds.bbci.co.uk/news/world/rss.xml
    category: World
  - name: Guardian
    type: HTML
    url: https://www.theguardian.com/international
    selectors:
      item: .fc-item
      title: .fc-item__title
      link: a
      time: time
`)
		sources, err := LoadSourcesFromFile(path)
		if err != nil {
			t.Fatalf("LoadSourcesFromFile() error = %v", err)
		}
		if len(sources) != 2 {
			t.Fatalf("len(sources) = %d, want 2", len(sources))
		}

		want := entity.Source{
			Name:       "BBC World",
			SourceType: entity.SourceTypeRSS,
			URL:        "http://feeds.bbci.co.uk/news/world/rss.xml",
			Category:   entity.CategoryWorld,
		}
		if diff := cmp.Diff(want, sources[0]); diff != "" {
			t.Errorf("first source mismatch (-want +got):\n%s", diff)
		}
		if sources[1].ScraperConfig == nil || sources[1].ScraperConfig.ItemSelector != ".fc-item" {
			t.Errorf("ScraperConfig = %+v, want item selector .fc-item", sources[1].ScraperConfig)
		}
	})

	t.Run("invalid source rejects whole catalog", func(t *testing.T) {
		path := writeSourcesFile(t, `
sources:
  - name: Broken
    type: HTML
    url: https://example.com
`)
		if _, err := LoadSourcesFromFile(path); err == nil {
			t.Error("expected error for HTML source without selectors")
		}
	})

	t.Run("empty catalog rejected", func(t *testing.T) {
		path := writeSourcesFile(t, "sources: []\n")
		if _, err := LoadSourcesFromFile(path); err == nil {
			t.Error("expected error for empty catalog")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSourcesFromFile("/nonexistent/sources.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestLoadSources_EnvOverride(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: Only One
    type: RSS
    url: https://example.com/rss
`)
	t.Setenv(sourcesFileEnv, path)

	sources, err := LoadSources()
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "Only One" {
		t.Errorf("sources = %+v, want the file catalog only", sources)
	}
}

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
