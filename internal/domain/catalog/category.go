package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Category is a node in the product category tree. Children are the inverse
// of the parent reference; acyclicity is a storage-layer invariant that the
// serialization layer documents but does not re-prove on every read.
type Category struct {
	shared.BaseEntity
	Name     string     `gorm:"type:varchar(100);not null"`
	Slug     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       strings.ToLower(slug),
	}, nil
}

// NewChildCategory creates a category under the given parent
func NewChildCategory(name, slug string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	category, err := NewCategory(name, slug)
	if err != nil {
		return nil, err
	}
	category.ParentID = &parent.ID
	return category, nil
}

// Rename updates the category's display name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot exceed 100 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_SLUG", "Category slug can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
