package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/catalog/core"
)

func resultsFor(products ...*core.Product) []*core.SearchResult {
	results := make([]*core.SearchResult, len(products))
	for i, product := range products {
		results[i] = &core.SearchResult{Product: product}
	}
	return results
}

func TestSortResults(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := &core.Product{Id: 1, Vendor: "Acme", Price: core.Money{Amount: 40}, Rating: 3.5, CreatedAt: base.Add(48 * time.Hour)}
	b := &core.Product{Id: 2, Vendor: "zeta", Price: core.Money{Amount: 20}, Rating: 4.8, CreatedAt: base}
	c := &core.Product{Id: 3, Vendor: "Brightside", Price: core.Money{Amount: 30}, CreatedAt: base.Add(24 * time.Hour)}

	ids := func(results []*core.SearchResult) []core.ID {
		out := make([]core.ID, len(results))
		for i, r := range results {
			out[i] = r.Product.Id
		}
		return out
	}

	tests := []struct {
		name string
		sort core.SortOption
		want []core.ID
	}{
		{"recent-desc", core.SortRecentDesc, []core.ID{1, 3, 2}},
		{"price-asc", core.SortPriceAsc, []core.ID{2, 3, 1}},
		{"price-desc", core.SortPriceDesc, []core.ID{1, 3, 2}},
		{"rating-desc treats absent as zero", core.SortRatingDesc, []core.ID{2, 1, 3}},
		{"vendor-asc ignores case", core.SortVendorAsc, []core.ID{1, 3, 2}},
		{"vendor-desc", core.SortVendorDesc, []core.ID{2, 3, 1}},
		{"unrecognized falls back to recent-desc", core.SortOption(99), []core.ID{1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := resultsFor(a, b, c)
			sortResults(results, tt.sort)
			assert.Equal(t, tt.want, ids(results))
		})
	}
}

func TestSortResultsStable(t *testing.T) {
	// Equal keys keep their input order.
	a := &core.Product{Id: 1, Price: core.Money{Amount: 10}}
	b := &core.Product{Id: 2, Price: core.Money{Amount: 10}}
	c := &core.Product{Id: 3, Price: core.Money{Amount: 5}}

	results := resultsFor(a, b, c)
	sortResults(results, core.SortPriceAsc)

	assert.Equal(t, core.ID(3), results[0].Product.Id)
	assert.Equal(t, core.ID(1), results[1].Product.Id)
	assert.Equal(t, core.ID(2), results[2].Product.Id)
}

func TestSortByScore(t *testing.T) {
	results := []*core.SearchResult{
		{Product: &core.Product{Id: 1}, Score: 2},
		{Product: &core.Product{Id: 2}, Score: 12},
		{Product: &core.Product{Id: 3}, Score: 7},
	}

	sortByScore(results)

	assert.Equal(t, core.ID(2), results[0].Product.Id)
	assert.Equal(t, core.ID(3), results[1].Product.Id)
	assert.Equal(t, core.ID(1), results[2].Product.Id)
}
