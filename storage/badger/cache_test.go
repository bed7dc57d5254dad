package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/storage"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func testSnapshot(feed string, titles ...string) *core.CatalogSnapshot {
	products := make([]core.Product, len(titles))
	for i, title := range titles {
		products[i] = core.Product{
			Id:     core.IDFromContent(title),
			Title:  title,
			Status: core.StatusActive,
			Price:  core.Money{Amount: 9.99, Currency: "GBP"},
		}
	}
	return &core.CatalogSnapshot{
		FeedKey:   core.IDFromContent(feed),
		Products:  products,
		Stats:     core.FeedStats{TotalRows: len(titles), Retained: len(titles)},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestCache_PutGetSnapshot(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	snapshot := testSnapshot("feed-a", "Whey Protein", "Creatine")
	require.NoError(t, cache.PutSnapshot(ctx, snapshot))

	got, err := cache.GetSnapshot(ctx, snapshot.FeedKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snapshot.FeedKey, got.FeedKey)
	assert.Equal(t, snapshot.Stats, got.Stats)
	assert.Equal(t, snapshot.Products, got.Products)
	assert.True(t, snapshot.CreatedAt.Equal(got.CreatedAt))
}

func TestCache_GetSnapshot_NotFound(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.GetSnapshot(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCache_LatestSnapshot(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	t.Run("empty cache", func(t *testing.T) {
		_, err := cache.LatestSnapshot(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("returns most recent", func(t *testing.T) {
		first := testSnapshot("feed-a", "Whey Protein")
		second := testSnapshot("feed-b", "Creatine", "BCAA")
		require.NoError(t, cache.PutSnapshot(ctx, first))
		require.NoError(t, cache.PutSnapshot(ctx, second))

		got, err := cache.LatestSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.FeedKey, got.FeedKey)
		assert.Len(t, got.Products, 2)
	})
}

func TestCache_PutSnapshot_ReplacesPrevious(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := testSnapshot("feed-a", "Whey Protein")
	second := testSnapshot("feed-b", "Creatine")
	require.NoError(t, cache.PutSnapshot(ctx, first))
	require.NoError(t, cache.PutSnapshot(ctx, second))

	// The old snapshot is gone, only the new one remains.
	_, err := cache.GetSnapshot(ctx, first.FeedKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := cache.GetSnapshot(ctx, second.FeedKey)
	require.NoError(t, err)
	assert.Equal(t, second.FeedKey, got.FeedKey)
}

func TestCache_PutSnapshot_SameFeedOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	snapshot := testSnapshot("feed-a", "Whey Protein")
	require.NoError(t, cache.PutSnapshot(ctx, snapshot))

	updated := testSnapshot("feed-a", "Whey Protein", "Creatine")
	require.NoError(t, cache.PutSnapshot(ctx, updated))

	got, err := cache.GetSnapshot(ctx, snapshot.FeedKey)
	require.NoError(t, err)
	assert.Len(t, got.Products, 2)
}

func TestCache_CancelledContext(t *testing.T) {
	cache := newTestCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cache.PutSnapshot(ctx, testSnapshot("feed-a", "Whey Protein"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = cache.GetSnapshot(ctx, core.ID(1))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = cache.LatestSnapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCache_Closed(t *testing.T) {
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	ctx := context.Background()

	assert.ErrorIs(t, cache.PutSnapshot(ctx, testSnapshot("feed-a", "Whey Protein")), storage.ErrStorageClosed)

	_, err = cache.GetSnapshot(ctx, core.ID(1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = cache.LatestSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
