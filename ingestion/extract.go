package ingestion

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/poiesic/catalog/core"
)

// defaultCurrency is used when the price blob is absent or malformed.
const defaultCurrency = "GBP"

// Each extractor below is a total function over one embedded JSON field:
// malformed or absent JSON is never an error, only the documented fallback.

type priceEnvelope struct {
	MinVariantPrice struct {
		Amount       json.RawMessage `json:"amount"`
		CurrencyCode string          `json:"currency_code"`
	} `json:"min_variant_price"`
	MaxVariantPrice struct {
		Amount       json.RawMessage `json:"amount"`
		CurrencyCode string          `json:"currency_code"`
	} `json:"max_variant_price"`
}

// extractPrice decodes the price-range blob. Fallback: amount 0, currency GBP.
func extractPrice(raw string) core.Money {
	money := core.Money{Amount: 0, Currency: defaultCurrency}
	if strings.TrimSpace(raw) == "" {
		return money
	}

	var envelope priceEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return money
	}

	if amount, ok := toFloat(envelope.MinVariantPrice.Amount); ok {
		money.Amount = amount
	}
	if envelope.MinVariantPrice.CurrencyCode != "" {
		money.Currency = envelope.MinVariantPrice.CurrencyCode
	}
	return money
}

// extractCompareAtPrice decodes the max variant price as the compare-at
// price when it exceeds the minimum. Fallback: nil.
func extractCompareAtPrice(raw string, price core.Money) *core.Money {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var envelope priceEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil
	}

	amount, ok := toFloat(envelope.MaxVariantPrice.Amount)
	if !ok || amount <= price.Amount {
		return nil
	}

	currency := envelope.MaxVariantPrice.CurrencyCode
	if currency == "" {
		currency = price.Currency
	}
	return &core.Money{Amount: amount, Currency: currency}
}

type imageEnvelope struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// extractFeaturedImage decodes the featured-image blob into a single-entry
// image list. Fallback: no image.
func extractFeaturedImage(raw string) []core.ProductImage {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var envelope imageEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil
	}
	if envelope.URL == "" {
		return nil
	}

	return []core.ProductImage{{
		URL:     envelope.URL,
		AltText: envelope.AltText,
		Width:   envelope.Width,
		Height:  envelope.Height,
	}}
}

// extractRating decodes the metafields blob into a rating and review count.
// A zero or unparsable value means absent, reported as (0, 0).
func extractRating(raw string) (rating float64, reviews int) {
	if strings.TrimSpace(raw) == "" {
		return 0, 0
	}

	var metafields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &metafields); err != nil {
		return 0, 0
	}

	if value, ok := metafieldValue(metafields, "rating"); ok {
		if parsed, ok := toFloat(value); ok && parsed > 0 {
			rating = parsed
		}
	}
	if rating == 0 {
		return 0, 0
	}

	for _, key := range []string{"rating_count", "reviews_count"} {
		if value, ok := metafieldValue(metafields, key); ok {
			if parsed, ok := toFloat(value); ok && parsed > 0 {
				reviews = int(parsed)
				break
			}
		}
	}
	return rating, reviews
}

// metafieldValue resolves a metafield entry, which may be a bare scalar or
// an object wrapping the scalar in a "value" key.
func metafieldValue(metafields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := metafields[key]
	if !ok {
		return nil, false
	}

	var wrapped struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Value) > 0 {
		return wrapped.Value, true
	}
	return raw, true
}

// toFloat interprets a JSON value as a number whether it was encoded as a
// number or as a numeric string.
func toFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
