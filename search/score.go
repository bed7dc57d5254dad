package search

import "strings"

// Field weights express each field's relative importance to relevance.
const (
	weightTitle       = 3.0
	weightVendor      = 2.0
	weightDescription = 1.0
	weightTags        = 0.5
)

// minScore is the relevance floor: query-scoped results below it are
// dropped. Low enough to keep a single weak fuzzy match on the lightest
// field (1 x 0.5).
const minScore = 0.1

// Fuzzy matching cost bounds: tokens shorter than fuzzyMinTokenLen never
// fuzzy-match, and fields longer than fuzzyMaxFieldLen after normalization
// are never fuzzy-scanned.
const (
	fuzzyMinTokenLen = 3
	fuzzyMaxFieldLen = 120
)

// Per-token match scores, applied in strict priority order. The ladder
// rewards precision: exact > prefix > word boundary > substring > fuzzy.
const (
	scoreExact     = 10.0
	scorePrefix    = 5.0
	scoreBoundary  = 4.0
	scoreSubstring = 2.0
	scoreFuzzy     = 1.0
)

// scoreField scores one text field against a token set. For each token the
// first matching strategy wins; token scores are additive, so multi-token
// queries accumulate credit from every matched token independently.
func scoreField(tokens []string, field string, weight float64) float64 {
	norm := normalize(field)
	if norm == "" {
		return 0
	}

	// Fuzzy form computed once per field, and only when the field
	// qualifies under the length cap.
	var fuzzyField string
	if len(norm) <= fuzzyMaxFieldLen {
		fuzzyField = stripNonAlphanumeric(norm)
	}

	padded := " " + norm + " "

	var total float64
	for _, token := range tokens {
		switch {
		case norm == token:
			total += scoreExact * weight
		case strings.HasPrefix(norm, token):
			total += scorePrefix * weight
		case strings.Contains(padded, " "+token+" "):
			total += scoreBoundary * weight
		case strings.Contains(norm, token):
			total += scoreSubstring * weight
		default:
			if len(token) < fuzzyMinTokenLen || fuzzyField == "" {
				continue
			}
			if isSubsequence(stripNonAlphanumeric(token), fuzzyField) {
				total += scoreFuzzy * weight
			}
		}
	}
	return total
}
