package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"lowercases", "Whey Protein", "whey protein"},
		{"trims", "  protein  ", "protein"},
		{"collapses runs", "whey \t  protein\n powder", "whey protein powder"},
		{"already normal", "whey protein", "whey protein"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

func TestNormalizeFuzzy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips punctuation", "Whey-Protein (1kg)", "wheyprotein1kg"},
		{"strips spaces", "whey protein", "wheyprotein"},
		{"keeps digits", "Omega-3 500mg", "omega3500mg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFuzzy(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single token", "Protein", []string{"protein"}},
		{"multiple tokens", "  Whey   Protein powder ", []string{"whey", "protein", "powder"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "high quality protein", "high quality protein"},
		{"tags become spaces", "<p>High quality</p><p>protein</p>", "high quality protein"},
		{"attributes stripped", `<a href="https://example.com">link text</a>`, "link text"},
		{"adjacent words separated", "one<br>two", "one two"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		name     string
		needle   string
		haystack string
		want     bool
	}{
		{"empty needle never matches", "", "anything", false},
		{"exact", "abc", "abc", true},
		{"gapped", "wyp", "wheyprotein", true},
		{"order matters", "pw", "wheyprotein", false},
		{"missing character", "abz", "abc", false},
		{"needle longer than haystack", "abcd", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSubsequence(tt.needle, tt.haystack))
		})
	}
}
