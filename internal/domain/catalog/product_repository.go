package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindBySeller finds all products listed by a seller, newest first
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)
	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	// CountByCategory counts products in a category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
