package search

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/poiesic/catalog/core"
)

// sortByScore orders results by relevance score descending. The sort is
// stable, so equal scores keep their input order.
func sortByScore(results []*core.SearchResult) {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// sortResults applies one of the six total orders in place. Every order is
// stable with respect to the input for equal keys. Vendor orders use a
// locale-aware comparison. An unrecognized option sorts as recent-desc.
func sortResults(results []*core.SearchResult, sort core.SortOption) {
	switch sort {
	case core.SortPriceAsc:
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return cmp.Compare(a.Product.Price.Amount, b.Product.Price.Amount)
		})
	case core.SortPriceDesc:
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return cmp.Compare(b.Product.Price.Amount, a.Product.Price.Amount)
		})
	case core.SortRatingDesc:
		// An absent rating is stored as 0 and sorts last.
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return cmp.Compare(b.Product.Rating, a.Product.Rating)
		})
	case core.SortVendorAsc:
		c := newVendorCollator()
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return c.CompareString(a.Product.Vendor, b.Product.Vendor)
		})
	case core.SortVendorDesc:
		c := newVendorCollator()
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return c.CompareString(b.Product.Vendor, a.Product.Vendor)
		})
	default:
		slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
			return b.Product.CreatedAt.Compare(a.Product.CreatedAt)
		})
	}
}

// newVendorCollator returns a collator for vendor name comparison.
// Collators are not safe for concurrent use, so each sort gets its own.
func newVendorCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}
