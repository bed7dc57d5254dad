package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/storage"
)

// Pipeline orchestrates feed ingestion: parsing, optional snapshot caching
// keyed by the feed content, and background execution on a worker pool.
//
// The pool holds a single worker, so at most one parse is in flight at a
// time; the cache is read before parsing and overwritten only after a
// successful parse.
type Pipeline struct {
	parser *Parser
	cache  storage.CatalogCache // nil disables caching
	pool   *ants.Pool
	mu     sync.Mutex
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithParser sets a custom parser.
// Default is a parser with default options.
func WithParser(parser *Parser) PipelineOption {
	return func(p *Pipeline) error {
		if parser != nil {
			p.parser = parser
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The cache may be nil, in
// which case every Ingest call parses the feed from scratch.
func NewPipeline(cache storage.CatalogCache, opts ...PipelineOption) (*Pipeline, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		parser: parser,
		cache:  cache,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest parses the feed text synchronously. When a cache is configured and
// already holds a snapshot for this exact feed content, the snapshot is
// returned without re-parsing (the monitor only fires for real parses).
// A successful parse overwrites the cached snapshot; cache failures are
// logged and never fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, text string, monitor ParseMonitor) (*ParseResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	feedKey := core.IDFromContent(text)

	if p.cache != nil {
		snapshot, err := p.cache.GetSnapshot(ctx, feedKey)
		switch {
		case err == nil:
			p.logger.Debug("snapshot cache hit", "feedKey", uint64(feedKey))
			return resultFromSnapshot(snapshot), nil
		case !errors.Is(err, storage.ErrNotFound):
			p.logger.Warn("snapshot cache read failed", "err", err)
		}
	}

	result, err := p.parser.Parse(text, monitor)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.PutSnapshot(ctx, snapshotFromResult(feedKey, result)); err != nil {
			p.logger.Warn("snapshot cache write failed", "err", err)
		}
	}

	return result, nil
}

// IngestAsync runs Ingest on the background worker and delivers the outcome
// to done, which may be nil. Returns an error only if the work could not be
// queued (the pipeline was released).
func (p *Pipeline) IngestAsync(ctx context.Context, text string, monitor ParseMonitor, done func(*ParseResult, error)) error {
	err := p.pool.Submit(func() {
		result, parseErr := p.Ingest(ctx, text, monitor)
		if parseErr != nil {
			p.logger.Error("background ingestion failed", "err", parseErr)
		}
		if done != nil {
			done(result, parseErr)
		}
	})
	if err != nil {
		return errors.Join(ErrPipelineReleased, err)
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func snapshotFromResult(feedKey core.ID, result *ParseResult) *core.CatalogSnapshot {
	products := make([]core.Product, len(result.Products))
	for i, product := range result.Products {
		products[i] = *product
	}
	return &core.CatalogSnapshot{
		FeedKey:   feedKey,
		Products:  products,
		Stats:     result.Stats,
		CreatedAt: time.Now().UTC(),
	}
}

func resultFromSnapshot(snapshot *core.CatalogSnapshot) *ParseResult {
	products := make([]*core.Product, len(snapshot.Products))
	for i := range snapshot.Products {
		products[i] = &snapshot.Products[i]
	}
	return &ParseResult{Products: products, Stats: snapshot.Stats}
}
