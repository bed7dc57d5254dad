// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/catalog"
	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/ingestion"
	"github.com/poiesic/catalog/storage"
)

func main() {
	app := &cli.App{
		Name:  "catalog",
		Usage: "Product catalog search over delimited store feeds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Parse a feed file and cache the resulting catalog",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cache",
						Aliases:  []string{"d"},
						Usage:    "Path to snapshot cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Path to feed file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N rows",
						Value: 1000,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the cached catalog",
				ArgsUsage: "[query terms...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cache",
						Aliases:  []string{"d"},
						Usage:    "Path to snapshot cache directory",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "vendor",
						Usage: "Only include products from this vendor (repeatable)",
					},
					&cli.Float64Flag{
						Name:  "min-price",
						Usage: "Only include products priced at or above this amount",
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Only include products priced at or below this amount",
					},
					&cli.BoolFlag{
						Name:  "in-stock",
						Usage: "Only include products with inventory",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (recent-desc, price-asc, price-desc, rating-desc, vendor-asc, vendor-desc)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 for all)",
						Value: 20,
					},
				},
			},
			{
				Name:   "vendors",
				Usage:  "List the vendors and price range of the cached catalog",
				Action: vendorsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cache",
						Aliases:  []string{"d"},
						Usage:    "Path to snapshot cache directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	feedPath := c.String("feed")
	text, err := os.ReadFile(feedPath)
	if err != nil {
		return fmt.Errorf("failed to read feed file: %w", err)
	}

	parser, err := ingestion.NewParser(ingestion.WithReportInterval(c.Int("report-interval")))
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	cat, err := catalog.NewCatalog(c.String("cache"), catalog.WithParser(parser))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	fmt.Fprintf(os.Stderr, "Feed: %s\n", feedPath)

	stats, err := cat.Ingest(ctx, string(text), newProgressPrinter(os.Stderr))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Rows:     %d\n", stats.TotalRows)
	fmt.Printf("Retained: %d\n", stats.Retained)
	fmt.Printf("Skipped:  %d\n", stats.Skipped)
	fmt.Printf("Errored:  %d\n", stats.Errored)
	fmt.Printf("Elapsed:  %s\n", stats.Elapsed)
	return nil
}

func searchCommand(c *cli.Context) error {
	cat, err := openCached(c)
	if err != nil {
		return err
	}
	defer cat.Close()

	filters := &core.SearchFilters{
		Vendors:     c.StringSlice("vendor"),
		InStockOnly: c.Bool("in-stock"),
	}
	if c.IsSet("min-price") {
		min := c.Float64("min-price")
		filters.MinPrice = &min
	}
	if c.IsSet("max-price") {
		max := c.Float64("max-price")
		filters.MaxPrice = &max
	}

	results := cat.Search(core.SearchOptions{
		Query:   strings.Join(c.Args().Slice(), " "),
		Filters: filters,
		Sort:    core.ParseSortOption(c.String("sort")),
		Limit:   c.Int("limit"),
	})

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		product := result.Product
		fmt.Printf("%2d. %s | %s | %.2f %s",
			i+1, product.Title, product.Vendor, product.Price.Amount, product.Price.Currency)
		if result.Score > 0 {
			fmt.Printf("  (score %.1f, matched %s)",
				result.Score, strings.Join(result.MatchedFields, ","))
		}
		fmt.Println()
	}
	return nil
}

func vendorsCommand(c *cli.Context) error {
	cat, err := openCached(c)
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, vendor := range cat.Vendors() {
		fmt.Println(vendor)
	}

	min, max := cat.PriceBounds()
	fmt.Printf("\nPrice range: %.2f - %.2f\n", min, max)
	return nil
}

// openCached opens the catalog at the cache flag and restores the cached
// snapshot into memory.
func openCached(c *cli.Context) (*catalog.Catalog, error) {
	cat, err := catalog.NewCatalog(c.String("cache"))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if _, err := cat.LoadCached(context.Background()); err != nil {
		cat.Close()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("no cached catalog at %s: run ingest first", c.String("cache"))
		}
		return nil, fmt.Errorf("failed to load cached catalog: %w", err)
	}
	return cat, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
