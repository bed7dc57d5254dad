package core

import (
	"errors"
	"testing"
)

func TestValidateProduct(t *testing.T) {
	valid := func() *Product {
		return &Product{
			Id:        IDFromContent("test-product"),
			Title:     "Whey Protein",
			Vendor:    "Transparent Labs",
			Status:    StatusActive,
			Price:     Money{Amount: 29.99, Currency: "GBP"},
			Inventory: 5,
			Rating:    4.5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{
			name:    "valid product",
			mutate:  func(*Product) {},
			wantErr: nil,
		},
		{
			name:    "empty title",
			mutate:  func(p *Product) { p.Title = "" },
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "unknown status",
			mutate:  func(p *Product) { p.Status = StatusUnknown },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "negative price",
			mutate:  func(p *Product) { p.Price.Amount = -1 },
			wantErr: ErrNegativePrice,
		},
		{
			name:    "negative inventory",
			mutate:  func(p *Product) { p.Inventory = -1 },
			wantErr: ErrNegativeInventory,
		},
		{
			name:    "rating above five",
			mutate:  func(p *Product) { p.Rating = 5.1 },
			wantErr: ErrInvalidRating,
		},
		{
			name:    "draft status is structurally valid",
			mutate:  func(p *Product) { p.Status = StatusDraft },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := valid()
			tt.mutate(product)

			err := ValidateProduct(product)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProduct() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProduct() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidProduct) {
				t.Errorf("ValidateProduct() error = %v, want wrapped %v", err, ErrInvalidProduct)
			}
		})
	}

	t.Run("nil product", func(t *testing.T) {
		if err := ValidateProduct(nil); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("ValidateProduct(nil) error = %v, want %v", err, ErrInvalidProduct)
		}
	})
}
