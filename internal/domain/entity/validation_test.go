package entity

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/news/1", false},
		{"valid http", "http://example.com", false},
		{"empty", "", true},
		{"no scheme", "example.com/news", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no host", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", maxURLLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "url", Message: "is required"}
	want := "validation error on field 'url': is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
