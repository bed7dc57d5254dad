package search

import (
	"regexp"
	"strings"
)

// tagPattern matches a single HTML tag, including its attributes.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// normalize lowercases, trims, and collapses any whitespace run to a single
// space. Total and deterministic: every input has exactly one normal form.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// normalizeFuzzy applies normalize and then strips every character outside
// [a-z0-9]. Used only by the fuzzy subsequence strategy.
func normalizeFuzzy(text string) string {
	return stripNonAlphanumeric(normalize(text))
}

// tokenize splits a query into normalized whitespace-delimited tokens.
// A query of only whitespace tokenizes to an empty slice.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// stripHTML replaces every tag with a single space and collapses the
// resulting whitespace, yielding the normalized plain text.
func stripHTML(text string) string {
	return normalize(tagPattern.ReplaceAllString(text, " "))
}

func stripNonAlphanumeric(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isSubsequence reports whether needle occurs in haystack as an ordered,
// not necessarily contiguous, subsequence.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return false
	}
	i := 0
	for j := 0; j < len(haystack) && i < len(needle); j++ {
		if haystack[j] == needle[i] {
			i++
		}
	}
	return i == len(needle)
}
