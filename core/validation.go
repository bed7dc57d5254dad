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


package core

import "fmt"

// ValidateProduct validates a Product according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Status must be a recognized value
//   - Price amount must not be negative
//   - Inventory must not be negative
//   - Rating must lie within [0, 5]
//
// NOT validated (populated by the parser with documented defaults):
//   - Handle, Description, BodyHTML, Tags, Images (may all be empty)
//   - ID (content-derived; any value is valid)
func ValidateProduct(product *Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidProduct)
	}

	if product.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyTitle)
	}

	if err := ValidateProductStatus(product.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	if product.Price.Amount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrNegativePrice)
	}

	if product.Inventory < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrNegativeInventory)
	}

	if product.Rating < 0 || product.Rating > 5 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrInvalidRating)
	}

	return nil
}

// ValidateProductStatus validates that a ProductStatus has a recognized value.
func ValidateProductStatus(status ProductStatus) error {
	switch status {
	case StatusActive, StatusDraft, StatusArchived:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}
