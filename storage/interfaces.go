package storage

import (
	"context"

	"github.com/poiesic/catalog/core"
)

// CatalogCache persists parsed feed snapshots keyed by feed content.
// Implementations must be thread-safe and support concurrent access.
type CatalogCache interface {
	// PutSnapshot stores a snapshot, replacing any previous one.
	// The snapshot becomes the latest snapshot. The write is atomic:
	// a concurrent reader sees either the old state or the new state.
	PutSnapshot(ctx context.Context, snapshot *core.CatalogSnapshot) error

	// GetSnapshot retrieves the snapshot for a feed key.
	// Returns ErrNotFound if no snapshot exists for the key.
	GetSnapshot(ctx context.Context, feedKey core.ID) (*core.CatalogSnapshot, error)

	// LatestSnapshot retrieves the most recently stored snapshot.
	// Returns ErrNotFound if the cache is empty.
	LatestSnapshot(ctx context.Context) (*core.CatalogSnapshot, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
