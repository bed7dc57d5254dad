package search

import "github.com/poiesic/catalog/core"

// applyFilters reduces the candidate set with the structured predicates.
// The predicates are independent and conjunctive. Absent filters are the
// identity: the input slice is returned unchanged, order preserved.
func applyFilters(products []*core.Product, filters *core.SearchFilters) []*core.Product {
	if filters.IsZero() {
		return products
	}

	var vendorSet map[string]bool
	if len(filters.Vendors) > 0 {
		vendorSet = make(map[string]bool, len(filters.Vendors))
		for _, vendor := range filters.Vendors {
			vendorSet[vendor] = true
		}
	}

	filtered := make([]*core.Product, 0, len(products))
	for _, product := range products {
		if vendorSet != nil && !vendorSet[product.Vendor] {
			continue
		}
		if filters.MinPrice != nil && product.Price.Amount < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && product.Price.Amount > *filters.MaxPrice {
			continue
		}
		if filters.InStockOnly && !product.InStock() {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}
