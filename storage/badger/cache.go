package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/storage"
)

// Cache is a BadgerDB-backed catalog snapshot cache.
// The cache holds at most one snapshot: storing a new one replaces the
// previous one in the same transaction.
type Cache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CatalogCache = (*Cache)(nil)

// CacheOption configures a Cache.
type CacheOption func(*Cache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCache creates a snapshot cache persisted at the given directory.
func NewCache(filePath string, opts ...CacheOption) (*Cache, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newCache(backend, opts...)
}

func newCache(backend *Backend, opts ...CacheOption) (*Cache, error) {
	c := &Cache{
		backend: backend,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			backend.Close()
			return nil, err
		}
	}

	return c, nil
}

// PutSnapshot stores a snapshot, replacing any previous one. The delete of
// the old snapshot, the write of the new one, and the latest pointer swap
// happen in a single transaction.
func (c *Cache) PutSnapshot(ctx context.Context, snapshot *core.CatalogSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	value := storage.MarshalCatalogSnapshot(snapshot)

	return c.backend.WithTx(func(tx *badger.Txn) error {
		previous, err := readLatestFeedKey(tx)
		if err != nil {
			return err
		}
		if previous != nil && *previous != snapshot.FeedKey {
			if err := tx.Delete(makeSnapshotKey(*previous)); err != nil {
				return err
			}
		}
		if err := tx.Set(makeSnapshotKey(snapshot.FeedKey), value); err != nil {
			return err
		}
		if err := tx.Set(makeLatestSnapshotKey(), storage.MarshalID(snapshot.FeedKey)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSnapshot retrieves the snapshot for a feed key.
// Returns storage.ErrNotFound if no snapshot exists for the key.
func (c *Cache) GetSnapshot(ctx context.Context, feedKey core.ID) (*core.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *core.CatalogSnapshot
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		var readErr error
		snapshot, readErr = readSnapshot(tx, feedKey)
		return readErr
	}, false)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, storage.ErrNotFound
	}
	return snapshot, nil
}

// LatestSnapshot retrieves the most recently stored snapshot.
// Returns storage.ErrNotFound if the cache is empty.
func (c *Cache) LatestSnapshot(ctx context.Context) (*core.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *core.CatalogSnapshot
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		feedKey, readErr := readLatestFeedKey(tx)
		if readErr != nil {
			return readErr
		}
		if feedKey == nil {
			return nil
		}
		snapshot, readErr = readSnapshot(tx, *feedKey)
		return readErr
	}, false)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, storage.ErrNotFound
	}
	return snapshot, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// readSnapshot reads a snapshot from the transaction.
// Returns nil without error when the key is absent.
func readSnapshot(tx *badger.Txn, feedKey core.ID) (*core.CatalogSnapshot, error) {
	item, err := tx.Get(makeSnapshotKey(feedKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot *core.CatalogSnapshot
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		snapshot, unmarshalErr = storage.UnmarshalCatalogSnapshot(val)
		if unmarshalErr != nil {
			return errors.Join(storage.ErrSerializationFailed, unmarshalErr)
		}
		return nil
	})
	return snapshot, err
}

// readLatestFeedKey reads the latest feed key pointer from the transaction.
// Returns nil without error when no snapshot has been stored yet.
func readLatestFeedKey(tx *badger.Txn) (*core.ID, error) {
	item, err := tx.Get(makeLatestSnapshotKey())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var feedKey core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		feedKey, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	if err != nil {
		return nil, err
	}
	return &feedKey, nil
}
