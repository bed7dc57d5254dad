package ingestion

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/catalog/core"
)

// Recognized feed columns. Names are case-sensitive; columns missing from
// the header simply leave their fields defaulted.
const (
	colID            = "ID"
	colTitle         = "TITLE"
	colHandle        = "HANDLE"
	colVendor        = "VENDOR"
	colProductType   = "PRODUCT_TYPE"
	colDescription   = "DESCRIPTION"
	colBodyHTML      = "BODY_HTML"
	colTags          = "TAGS"
	colStatus        = "STATUS"
	colCreatedAt     = "CREATED_AT"
	colUpdatedAt     = "UPDATED_AT"
	colPriceRange    = "PRICE_RANGE_V2"
	colInventory     = "TOTAL_INVENTORY"
	colFeaturedImage = "FEATURED_IMAGE"
	colMetafields    = "METAFIELDS"
)

// defaultTitle is the placeholder for rows with a missing title.
const defaultTitle = "Untitled product"

// defaultReportInterval is how many rows pass between progress callbacks.
const defaultReportInterval = 1000

// ParseResult is the outcome of a successful parse: the retained records
// and the run statistics.
type ParseResult struct {
	Products []*core.Product
	Stats    core.FeedStats
}

// Parser decodes a raw delimited product feed into catalog records.
type Parser struct {
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithReportInterval sets how many rows pass between progress callbacks.
// Default is 1000; values below 1 are raised to 1.
func WithReportInterval(rows int) Option {
	return func(p *Parser) error {
		if rows < 1 {
			rows = 1
		}
		p.reportInterval = rows
		return nil
	}
}

// NewParser creates a new feed parser.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		reportInterval: defaultReportInterval,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse decodes the feed text. The first non-blank row is the header; every
// later non-blank row decodes into a product. Only rows with an ACTIVE
// status and a positive price are retained; rows failing the retention rule
// count as skipped, rows failing to decode count as errored, and neither
// aborts the parse. Parse fails only when the feed holds fewer than two
// non-blank rows (ErrNoData).
//
// A nil monitor is allowed. See ParseMonitor for the callback contract.
func (p *Parser) Parse(text string, monitor ParseMonitor) (*ParseResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()
	stats := core.FeedStats{}

	var header []string
	var dataRows [][]string
	for _, row := range scanRows(text) {
		if isBlankRow(row) {
			stats.BlankRows++
			continue
		}
		if header == nil {
			header = row
			continue
		}
		dataRows = append(dataRows, row)
	}

	if header == nil || len(dataRows) == 0 {
		return nil, ErrNoData
	}

	stats.TotalRows = len(dataRows)
	monitor.Start(len(dataRows))

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	products := make([]*core.Product, 0, len(dataRows))
	for i, row := range dataRows {
		product, err := p.decodeRow(columns, row)
		switch {
		case err != nil:
			stats.Errored++
			p.logger.Debug("row failed to decode", "row", i+1, "err", err)
		case product.Status == core.StatusActive && product.Price.Amount > 0:
			stats.Retained++
			products = append(products, product)
		default:
			stats.Skipped++
		}

		if (i+1)%p.reportInterval == 0 && i+1 < len(dataRows) {
			stats.Elapsed = time.Since(start)
			monitor.Progress(percentage(i+1, len(dataRows)), stats)
		}
	}

	stats.Elapsed = time.Since(start)
	monitor.Finish(stats)

	p.logger.Info("feed parsed",
		"rows", stats.TotalRows,
		"retained", stats.Retained,
		"skipped", stats.Skipped,
		"errored", stats.Errored,
		"elapsed", stats.Elapsed)

	return &ParseResult{Products: products, Stats: stats}, nil
}

// decodeRow builds one product from a header-mapped row. Every scalar field
// falls back to a documented default; a panic from a decoder surfaces as an
// error so the row is counted, not the parse aborted.
func (p *Parser) decodeRow(columns map[string]int, row []string) (product *core.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			product = nil
			err = fmt.Errorf("row decode panicked: %v", r)
		}
	}()

	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	title := strings.TrimSpace(field(colTitle))
	if title == "" {
		title = defaultTitle
	}

	rawID := strings.TrimSpace(field(colID))
	handle := strings.TrimSpace(field(colHandle))
	if rawID == "" {
		rawID = handle + ":" + title
	}

	price := extractPrice(field(colPriceRange))
	rating, reviews := extractRating(field(colMetafields))

	product = &core.Product{
		Id:             core.IDFromContent(rawID),
		Handle:         handle,
		Title:          title,
		Vendor:         strings.TrimSpace(field(colVendor)),
		ProductType:    strings.TrimSpace(field(colProductType)),
		Description:    strings.TrimSpace(field(colDescription)),
		BodyHTML:       field(colBodyHTML),
		Tags:           splitTags(field(colTags)),
		Status:         core.ParseProductStatus(field(colStatus)),
		CreatedAt:      parseTimestamp(field(colCreatedAt)),
		UpdatedAt:      parseTimestamp(field(colUpdatedAt)),
		Price:          price,
		CompareAtPrice: extractCompareAtPrice(field(colPriceRange), price),
		Inventory:      parseInventory(field(colInventory)),
		Images:         extractFeaturedImage(field(colFeaturedImage)),
		Rating:         rating,
		ReviewCount:    reviews,
	}
	return product, nil
}

// splitTags splits a comma-separated tag list, trimming entries and
// dropping empty ones.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseTimestamp decodes an RFC3339 timestamp, falling back to the zero time.
func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// parseInventory decodes the inventory count, falling back to 0. Negative
// feed values (oversold stock) clamp to 0.
func parseInventory(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func percentage(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}
