package scraper

import (
	"testing"
	"time"
)

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		base string
		want string
	}{
		{"already absolute", "https://example.com/a", "https://other.com", "https://example.com/a"},
		{"root relative", "/news/story", "https://example.com/section", "https://example.com/news/story"},
		{"path relative", "story", "https://example.com/section/", "https://example.com/section/story"},
		{"bad base returns href", "/x", "://broken", "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeAbsoluteURL(tt.href, tt.base); got != tt.want {
				t.Errorf("makeAbsoluteURL(%q, %q) = %q, want %q", tt.href, tt.base, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"ftp scheme", "ftp://example.com/feed", true},
		{"file scheme", "file:///etc/passwd", true},
		{"loopback without port", "http://127.0.0.1/admin", true},
		{"loopback with low port", "http://127.0.0.1:8080/admin", true},
		{"httptest ephemeral port allowed", "http://127.0.0.1:43210/feed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestParseItemDate(t *testing.T) {
	want := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	if got := parseItemDate("2026-08-30T09:00:00Z"); !got.Equal(want) {
		t.Errorf("parseItemDate() = %v, want %v", got, want)
	}

	// Unparseable dates fall back to roughly now.
	got := parseItemDate("sometime recently")
	if time.Since(got) > time.Minute {
		t.Errorf("parseItemDate fallback = %v, want near now", got)
	}
}
