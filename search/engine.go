package search

import (
	"log/slog"
	"slices"

	"github.com/poiesic/catalog/core"
)

// Engine ranks an in-memory product collection against search options.
// It holds no state across invocations: Search is a pure function of the
// record collection and the options, and never mutates either.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search filters, scores and orders the product collection.
//
// Structured filters always apply first. With an empty or whitespace-only
// query, every surviving record is returned with score 0, ordered by the
// explicit sort or by vendor-asc when none was given. With a query, records
// scoring below the relevance threshold are dropped, results carry their
// matched-field set, and relevance order (score descending) stands unless
// an explicit sort overrides it. A positive Limit truncates the final list.
func (e *Engine) Search(products []*core.Product, opts core.SearchOptions) []*core.SearchResult {
	filtered := applyFilters(products, opts.Filters)

	if normalize(opts.Query) == "" {
		results := make([]*core.SearchResult, 0, len(filtered))
		for _, product := range filtered {
			results = append(results, &core.SearchResult{Product: product})
		}

		sortOpt := opts.Sort
		if sortOpt == core.SortUnspecified {
			sortOpt = core.SortVendorAsc
		}
		sortResults(results, sortOpt)
		return truncate(results, opts.Limit)
	}

	tokens := tokenize(opts.Query)
	if len(tokens) == 0 {
		// Defensive: a non-empty normalized query always yields tokens.
		return []*core.SearchResult{}
	}

	results := make([]*core.SearchResult, 0, len(filtered))
	for _, product := range filtered {
		score := relevanceScore(product, tokens)
		if score < minScore {
			continue
		}
		results = append(results, &core.SearchResult{
			Product:       product,
			Score:         score,
			MatchedFields: matchedFields(product, tokens),
		})
	}

	sortByScore(results)

	if opts.Sort != core.SortUnspecified {
		sortResults(results, opts.Sort)
	}

	e.logger.Debug("search complete",
		"query", opts.Query,
		"candidates", len(filtered),
		"results", len(results))

	return truncate(results, opts.Limit)
}

func truncate(results []*core.SearchResult, limit int) []*core.SearchResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// Vendors returns the distinct vendor names of a collection in collated
// order, for building filter controls.
func Vendors(products []*core.Product) []string {
	seen := make(map[string]bool, len(products))
	var vendors []string
	for _, product := range products {
		if product.Vendor == "" || seen[product.Vendor] {
			continue
		}
		seen[product.Vendor] = true
		vendors = append(vendors, product.Vendor)
	}

	c := newVendorCollator()
	slices.SortStableFunc(vendors, func(a, b string) int {
		return c.CompareString(a, b)
	})
	return vendors
}

// PriceBounds returns the lowest and highest price amount across a
// collection. An empty collection yields (0, 0).
func PriceBounds(products []*core.Product) (min, max float64) {
	if len(products) == 0 {
		return 0, 0
	}
	min = products[0].Price.Amount
	max = products[0].Price.Amount
	for _, product := range products[1:] {
		if product.Price.Amount < min {
			min = product.Price.Amount
		}
		if product.Price.Amount > max {
			max = product.Price.Amount
		}
	}
	return min, max
}
