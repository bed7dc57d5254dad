package search

import (
	"strings"

	"github.com/poiesic/catalog/core"
)

// Searchable field names, as disclosed in SearchResult.MatchedFields.
const (
	fieldTitle       = "title"
	fieldVendor      = "vendor"
	fieldDescription = "description"
	fieldTags        = "tags"
)

// searchableDescription returns the long-form text to score: the plain
// description when present, otherwise the HTML body with tags stripped.
func searchableDescription(product *core.Product) string {
	text := product.Description
	if text == "" {
		text = product.BodyHTML
	}
	return stripHTML(text)
}

// relevanceScore aggregates the field scores of one product over the four
// weighted fields.
func relevanceScore(product *core.Product, tokens []string) float64 {
	score := scoreField(tokens, product.Title, weightTitle)
	score += scoreField(tokens, product.Vendor, weightVendor)
	score += scoreField(tokens, searchableDescription(product), weightDescription)
	score += scoreField(tokens, strings.Join(product.Tags, " "), weightTags)
	return score
}

// matchedFields reports which fields any token touched, for result
// transparency. The test here is deliberately looser than the scoring
// ladder (any normalized substring counts), so a field can be disclosed
// even when it contributed no score.
func matchedFields(product *core.Product, tokens []string) []string {
	fields := []struct {
		name string
		text string
	}{
		{fieldTitle, product.Title},
		{fieldVendor, product.Vendor},
		{fieldDescription, searchableDescription(product)},
		{fieldTags, strings.Join(product.Tags, " ")},
	}

	var matched []string
	for _, field := range fields {
		norm := normalize(field.text)
		if norm == "" {
			continue
		}
		for _, token := range tokens {
			if strings.Contains(norm, token) {
				matched = append(matched, field.name)
				break
			}
		}
	}
	return matched
}
