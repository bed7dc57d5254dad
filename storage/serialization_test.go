package storage

import (
	"testing"
	"time"

	"github.com/poiesic/catalog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test feed content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCatalogSnapshot(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	compareAt := core.Money{Amount: 59.99, Currency: "GBP"}

	tests := []struct {
		name     string
		snapshot *core.CatalogSnapshot
	}{
		{
			name: "empty snapshot",
			snapshot: &core.CatalogSnapshot{
				FeedKey:   core.IDFromContent("empty feed"),
				CreatedAt: now,
			},
		},
		{
			name: "snapshot with minimal product",
			snapshot: &core.CatalogSnapshot{
				FeedKey: core.ID(7),
				Products: []core.Product{
					{
						Id:     core.ID(1),
						Title:  "Whey Protein Isolate",
						Status: core.StatusActive,
						Price:  core.Money{Amount: 29.99, Currency: "GBP"},
					},
				},
				Stats:     core.FeedStats{TotalRows: 1, Retained: 1},
				CreatedAt: now,
			},
		},
		{
			name: "snapshot with fully populated product",
			snapshot: &core.CatalogSnapshot{
				FeedKey: core.IDFromContent("full feed"),
				Products: []core.Product{
					{
						Id:             core.IDFromContent("gid://shopify/Product/1"),
						Handle:         "whey-protein-isolate",
						Title:          "Whey Protein Isolate",
						Vendor:         "Transparent Labs",
						ProductType:    "Protein",
						Description:    "Clean whey protein isolate.",
						BodyHTML:       "<p>Clean whey protein isolate.</p>",
						Tags:           []string{"protein", "isolate", "grass-fed"},
						Status:         core.StatusActive,
						CreatedAt:      now.Add(-48 * time.Hour),
						UpdatedAt:      now,
						Price:          core.Money{Amount: 44.99, Currency: "GBP"},
						CompareAtPrice: &compareAt,
						Inventory:      120,
						Images: []core.ProductImage{
							{URL: "https://cdn.example.com/whey.jpg", AltText: "Whey tub", Width: 800, Height: 800},
						},
						Rating:      4.6,
						ReviewCount: 312,
					},
					{
						Id:     core.ID(2),
						Title:  "Untitled product",
						Status: core.StatusDraft,
						Price:  core.Money{Amount: 0, Currency: "GBP"},
					},
				},
				Stats: core.FeedStats{
					TotalRows: 3,
					Retained:  1,
					Skipped:   1,
					Errored:   1,
					BlankRows: 2,
					Elapsed:   125 * time.Millisecond,
				},
				CreatedAt: now,
			},
		},
		{
			name: "snapshot with unicode fields",
			snapshot: &core.CatalogSnapshot{
				FeedKey: core.ID(99),
				Products: []core.Product{
					{
						Id:     core.ID(3),
						Title:  "Thé vert 抹茶",
						Vendor: "Café Müller",
						Status: core.StatusActive,
						Price:  core.Money{Amount: 12.50, Currency: "EUR"},
					},
				},
				CreatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCatalogSnapshot(tt.snapshot)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCatalogSnapshot(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.snapshot.FeedKey, decoded.FeedKey)
			assert.Equal(t, tt.snapshot.Stats, decoded.Stats)
			assert.True(t, tt.snapshot.CreatedAt.Equal(decoded.CreatedAt))

			require.Len(t, decoded.Products, len(tt.snapshot.Products))
			for i, want := range tt.snapshot.Products {
				got := decoded.Products[i]
				assert.Equal(t, want.Id, got.Id)
				assert.Equal(t, want.Handle, got.Handle)
				assert.Equal(t, want.Title, got.Title)
				assert.Equal(t, want.Vendor, got.Vendor)
				assert.Equal(t, want.ProductType, got.ProductType)
				assert.Equal(t, want.Description, got.Description)
				assert.Equal(t, want.BodyHTML, got.BodyHTML)
				assert.Equal(t, want.Status, got.Status)
				assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
				assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
				assert.Equal(t, want.Price, got.Price)
				assert.Equal(t, want.CompareAtPrice, got.CompareAtPrice)
				assert.Equal(t, want.Inventory, got.Inventory)
				assert.Equal(t, want.Rating, got.Rating)
				assert.Equal(t, want.ReviewCount, got.ReviewCount)
				// Handle nil vs empty slice
				if len(want.Tags) == 0 {
					assert.Empty(t, got.Tags)
				} else {
					assert.Equal(t, want.Tags, got.Tags)
				}
				if len(want.Images) == 0 {
					assert.Empty(t, got.Images)
				} else {
					assert.Equal(t, want.Images, got.Images)
				}
			}
		})
	}
}

func TestUnmarshalCatalogSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", []byte{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalCatalogSnapshot(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestSnapshotRoundTripConsistency(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	original := &core.CatalogSnapshot{
		FeedKey: core.IDFromContent("consistency feed"),
		Products: []core.Product{
			{
				Id:     core.ID(1),
				Title:  "Creatine Monohydrate",
				Vendor: "Optimum Nutrition",
				Tags:   []string{"creatine"},
				Status: core.StatusActive,
				Price:  core.Money{Amount: 19.99, Currency: "GBP"},
			},
		},
		Stats:     core.FeedStats{TotalRows: 1, Retained: 1},
		CreatedAt: now,
	}

	current := original
	for range 3 {
		data := MarshalCatalogSnapshot(current)
		decoded, err := UnmarshalCatalogSnapshot(data)
		require.NoError(t, err)
		current = decoded
	}

	assert.Equal(t, original.FeedKey, current.FeedKey)
	assert.Equal(t, original.Stats, current.Stats)
	assert.True(t, original.CreatedAt.Equal(current.CreatedAt))
	assert.Equal(t, original.Products, current.Products)
}
