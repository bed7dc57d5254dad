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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProduct indicates a Product failed validation.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidStatus indicates an unrecognized ProductStatus value.
	ErrInvalidStatus = errors.New("invalid product status")

	// ErrNegativePrice indicates a price amount below zero.
	ErrNegativePrice = errors.New("price amount cannot be negative")

	// ErrNegativeInventory indicates an inventory count below zero.
	ErrNegativeInventory = errors.New("inventory cannot be negative")

	// ErrInvalidRating indicates a rating outside the 0-5 range.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)
