package internal

import (
	"regexp"
	"testing"
)

func TestGenerateResultID(t *testing.T) {
	id := GenerateResultID("happy")

	if !regexp.MustCompile(`^\d+_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("GenerateResultID() = %q, want epochMillis_hash", id)
	}

	other := GenerateResultID("sad")
	if id[len(id)-8:] == other[len(other)-8:] {
		t.Errorf("Expected different hash suffixes for different words: %s vs %s", id, other)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"happy", "happy"},
		{"no cap", "no_cap"},
		{"a/b\\c", "a_b_c"},
		{"well-being_2", "well-being_2"},
		{"खुश", "खुश"},
		{"vibing!", "vibing_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
