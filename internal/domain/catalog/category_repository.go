package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	// ExistsBySlug checks if a category with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// FindChildren finds all direct children of a category, ordered by name
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	// FindRoots finds all root categories, ordered by name
	FindRoots(ctx context.Context) ([]Category, error)
	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
