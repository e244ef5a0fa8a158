package classify

import (
	"math"
	"testing"
)

func TestTone(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  float64
	}{
		{"neutral when no matches", "Quarterly report published today", 0},
		{"single positive word", "Breakthrough in cancer research", 0.7},
		{"single negative word", "Warning issued over flooding", -0.4},
		{"accumulated and clamped", "Crisis looms as markets decline", -1.0}, // -0.8 + -0.5 clamped
		{"positive and negative mix", "Growth slows amid concern", 0.4 - 0.3},
		{"case insensitive", "SUCCESS for the home team", 0.6},
		{"empty title", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tone(tt.title)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Tone(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestTone_AlwaysWithinRange(t *testing.T) {
	titles := []string{
		"crisis disaster failure decline warning concern",
		"excellent breakthrough success innovative growth improvement",
		"excellent crisis",
		"",
	}
	for _, title := range titles {
		got := Tone(title)
		if got < -1 || got > 1 {
			t.Errorf("Tone(%q) = %v, outside [-1, 1]", title, got)
		}
	}
}
