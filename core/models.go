package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing of feed identifiers.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ProductStatus is the lifecycle state of a product in the feed.
type ProductStatus int

const (
	// StatusUnknown represents an unrecognized status value from the feed.
	StatusUnknown ProductStatus = iota
	// StatusActive represents a live, sellable product.
	StatusActive
	// StatusDraft represents an unpublished product.
	StatusDraft
	// StatusArchived represents a retired product.
	StatusArchived
)

// ParseProductStatus maps a feed status value to a ProductStatus.
// An empty value defaults to StatusActive; anything unrecognized maps to
// StatusUnknown rather than being coerced.
func ParseProductStatus(value string) ProductStatus {
	switch strings.TrimSpace(value) {
	case "":
		return StatusActive
	case "ACTIVE":
		return StatusActive
	case "DRAFT":
		return StatusDraft
	case "ARCHIVED":
		return StatusArchived
	default:
		return StatusUnknown
	}
}

// String returns the feed representation of the status.
func (s ProductStatus) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusDraft:
		return "DRAFT"
	case StatusArchived:
		return "ARCHIVED"
	default:
		return "UNKNOWN"
	}
}

// SortOption selects one of the supported result orderings.
type SortOption int

const (
	// SortUnspecified means the caller supplied no explicit sort.
	SortUnspecified SortOption = iota
	// SortRecentDesc orders by creation timestamp, newest first.
	SortRecentDesc
	// SortPriceAsc orders by price amount, lowest first.
	SortPriceAsc
	// SortPriceDesc orders by price amount, highest first.
	SortPriceDesc
	// SortRatingDesc orders by rating, highest first. Absent ratings sort as 0.
	SortRatingDesc
	// SortVendorAsc orders by vendor name, A to Z.
	SortVendorAsc
	// SortVendorDesc orders by vendor name, Z to A.
	SortVendorDesc
)

// ParseSortOption maps a sort name to a SortOption.
// An empty name means unspecified; an unrecognized name falls back to
// SortRecentDesc.
func ParseSortOption(name string) SortOption {
	switch name {
	case "":
		return SortUnspecified
	case "recent-desc":
		return SortRecentDesc
	case "price-asc":
		return SortPriceAsc
	case "price-desc":
		return SortPriceDesc
	case "rating-desc":
		return SortRatingDesc
	case "vendor-asc":
		return SortVendorAsc
	case "vendor-desc":
		return SortVendorDesc
	default:
		return SortRecentDesc
	}
}

// String returns the sort name.
func (s SortOption) String() string {
	switch s {
	case SortRecentDesc:
		return "recent-desc"
	case SortPriceAsc:
		return "price-asc"
	case SortPriceDesc:
		return "price-desc"
	case SortRatingDesc:
		return "rating-desc"
	case SortVendorAsc:
		return "vendor-asc"
	case SortVendorDesc:
		return "vendor-desc"
	default:
		return "unspecified"
	}
}

// Money is a price amount with its currency code.
type Money struct {
	Amount   float64
	Currency string
}

// ProductImage is a single product image entry.
type ProductImage struct {
	URL     string
	AltText string
	Width   int
	Height  int
}

// Product represents a single catalog record surviving ingestion.
type Product struct {
	Id             ID
	Handle         string
	Title          string
	Vendor         string
	ProductType    string
	Description    string
	BodyHTML       string
	Tags           []string
	Status         ProductStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Price          Money
	CompareAtPrice *Money
	Inventory      int // Units available; 0 means out of stock
	Images         []ProductImage
	Rating         float64 // Aggregate rating 0-5; 0 means no rating recorded
	ReviewCount    int
}

// InStock reports whether the product has inventory available.
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// SearchFilters is an optional structured predicate over the record set.
// A zero value imposes no restriction.
type SearchFilters struct {
	Vendors     []string // Acceptable vendor names; empty means no restriction
	MinPrice    *float64 // Inclusive lower price bound; nil means unbounded
	MaxPrice    *float64 // Inclusive upper price bound; nil means unbounded
	InStockOnly bool
}

// IsZero reports whether the filters impose no restriction at all.
// Callers should treat such a value as absent.
func (f *SearchFilters) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.Vendors) == 0 && f.MinPrice == nil && f.MaxPrice == nil && !f.InStockOnly
}

// SearchOptions holds all parameters of one search invocation.
type SearchOptions struct {
	Query   string
	Filters *SearchFilters // nil means unfiltered
	Sort    SortOption     // SortUnspecified means relevance order (or the default)
	Limit   int            // Maximum results; 0 or negative means unlimited
}

// SearchResult is a product extended with per-query derived attributes.
// Score is 0 and MatchedFields empty when no query was supplied.
type SearchResult struct {
	Product       *Product
	Score         float64
	MatchedFields []string
}

// FeedStats holds cumulative statistics of one ingestion run.
type FeedStats struct {
	TotalRows int // Data rows scanned (header and blank rows excluded)
	Retained  int // Rows that became catalog records
	Skipped   int // Rows excluded by the retention rule
	Errored   int // Rows whose decoding failed
	BlankRows int // Empty rows encountered and ignored
	Elapsed   time.Duration
}

// CatalogSnapshot is the cacheable outcome of one successful parse:
// the retained records, the run statistics and the key of the feed text
// they were produced from.
type CatalogSnapshot struct {
	FeedKey   ID
	Products  []Product
	Stats     FeedStats
	CreatedAt time.Time
}
