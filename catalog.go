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


package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/ingestion"
	"github.com/poiesic/catalog/search"
	"github.com/poiesic/catalog/storage"
	"github.com/poiesic/catalog/storage/badger"
)

// Catalog ties the feed pipeline, snapshot cache and search engine into a
// single product catalog. Load a feed once, then run any number of searches
// against the loaded collection.
type Catalog struct {
	cache    storage.CatalogCache
	pipeline *ingestion.Pipeline
	engine   *search.Engine
	logger   *slog.Logger

	mu       sync.RWMutex
	products []*core.Product
	stats    core.FeedStats
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	logger *slog.Logger
	parser *ingestion.Parser
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParser sets a custom feed parser.
// Default is a parser with default options.
func WithParser(parser *ingestion.Parser) CatalogOption {
	return func(o *catalogOptions) {
		o.parser = parser
	}
}

// NewCatalog creates a catalog with a snapshot cache persisted at filePath.
func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	cache, err := badger.NewCache(filePath)
	if err != nil {
		return nil, err
	}
	return newCatalog(cache, opts...)
}

// NewMemoryCatalog creates a catalog with an in-memory snapshot cache.
func NewMemoryCatalog(opts ...CatalogOption) (*Catalog, error) {
	cache, err := badger.NewMemoryCache()
	if err != nil {
		return nil, err
	}
	return newCatalog(cache, opts...)
}

func newCatalog(cache storage.CatalogCache, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	pipelineOpts := []ingestion.PipelineOption{
		ingestion.WithPipelineLogger(options.logger),
	}
	if options.parser != nil {
		pipelineOpts = append(pipelineOpts, ingestion.WithParser(options.parser))
	}

	pipeline, err := ingestion.NewPipeline(cache, pipelineOpts...)
	if err != nil {
		cache.Close()
		return nil, err
	}

	engine, err := search.NewEngine(search.WithLogger(options.logger))
	if err != nil {
		pipeline.Release()
		cache.Close()
		return nil, err
	}

	return &Catalog{
		cache:    cache,
		pipeline: pipeline,
		engine:   engine,
		logger:   options.logger,
	}, nil
}

// Ingest parses the feed text and makes the retained products the current
// collection. Previously loaded products are replaced. See
// ingestion.Pipeline.Ingest for the caching and monitor behavior.
func (c *Catalog) Ingest(ctx context.Context, text string, monitor ingestion.ParseMonitor) (core.FeedStats, error) {
	result, err := c.pipeline.Ingest(ctx, text, monitor)
	if err != nil {
		return core.FeedStats{}, err
	}

	c.mu.Lock()
	c.products = result.Products
	c.stats = result.Stats
	c.mu.Unlock()

	return result.Stats, nil
}

// IngestAsync runs Ingest in the background and delivers the resulting
// statistics to done, which may be nil. Returns an error only if the work
// could not be queued.
func (c *Catalog) IngestAsync(ctx context.Context, text string, monitor ingestion.ParseMonitor, done func(core.FeedStats, error)) error {
	return c.pipeline.IngestAsync(ctx, text, monitor, func(result *ingestion.ParseResult, err error) {
		if err == nil {
			c.mu.Lock()
			c.products = result.Products
			c.stats = result.Stats
			c.mu.Unlock()
		}
		if done != nil {
			if err != nil {
				done(core.FeedStats{}, err)
			} else {
				done(result.Stats, nil)
			}
		}
	})
}

// LoadCached restores the most recently ingested feed from the snapshot
// cache. Returns storage.ErrNotFound if no snapshot has been stored yet.
func (c *Catalog) LoadCached(ctx context.Context) (core.FeedStats, error) {
	snapshot, err := c.cache.LatestSnapshot(ctx)
	if err != nil {
		return core.FeedStats{}, err
	}

	products := make([]*core.Product, len(snapshot.Products))
	for i := range snapshot.Products {
		products[i] = &snapshot.Products[i]
	}

	c.mu.Lock()
	c.products = products
	c.stats = snapshot.Stats
	c.mu.Unlock()

	c.logger.Info("catalog restored from cache", "products", len(products))
	return snapshot.Stats, nil
}

// Search runs a search over the current collection.
func (c *Catalog) Search(opts core.SearchOptions) []*core.SearchResult {
	c.mu.RLock()
	products := c.products
	c.mu.RUnlock()

	return c.engine.Search(products, opts)
}

// Products returns the current collection.
func (c *Catalog) Products() []*core.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Stats returns the statistics of the last successful ingestion.
func (c *Catalog) Stats() core.FeedStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Vendors returns the distinct vendor names of the current collection in
// collated order.
func (c *Catalog) Vendors() []string {
	c.mu.RLock()
	products := c.products
	c.mu.RUnlock()

	return search.Vendors(products)
}

// PriceBounds returns the lowest and highest price across the current
// collection.
func (c *Catalog) PriceBounds() (min, max float64) {
	c.mu.RLock()
	products := c.products
	c.mu.RUnlock()

	return search.PriceBounds(products)
}

// Close releases the pipeline and closes the snapshot cache.
func (c *Catalog) Close() error {
	c.pipeline.Release()

	if err := c.cache.Close(); err != nil {
		c.logger.Error("error closing snapshot cache", "err", err)
		return err
	}
	return nil
}
