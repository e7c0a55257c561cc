package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/serializer"
	"go.uber.org/zap"
)

// CategorySerializer renders the category tree. Every node uses the same
// recursive shape: name, slug and the node's children rendered the same way.
type CategorySerializer struct {
	categories catalog.CategoryRepository
	logger     *zap.Logger

	tree *serializer.Composer
	flat *serializer.Composer
}

// NewCategorySerializer creates a CategorySerializer
func NewCategorySerializer(categories catalog.CategoryRepository, logger *zap.Logger) (*CategorySerializer, error) {
	tree, err := serializer.NewComposer(CategoryTreeSchema())
	if err != nil {
		return nil, err
	}
	flat, err := serializer.NewComposer(CategoryFlatSchema())
	if err != nil {
		return nil, err
	}
	return &CategorySerializer{
		categories: categories,
		logger:     logger,
		tree:       tree,
		flat:       flat,
	}, nil
}

// Create deserializes a flat payload into a new category. A parent slug, if
// present, places the category under that parent; duplicate slugs are a
// validation failure.
func (s *CategorySerializer) Create(ctx context.Context, sctx serializer.Context, payload serializer.Values) (*catalog.Category, error) {
	flow, err := serializer.NewWriteFlow(s.flat, nil, nil)
	if err != nil {
		return nil, err
	}
	own, err := flow.Deserialize(ctx, sctx, payload)
	if err != nil {
		return nil, err
	}

	name, err := stringField(own, "name")
	if err != nil {
		return nil, err
	}
	slug, err := stringField(own, "slug")
	if err != nil {
		return nil, err
	}

	exists, err := s.categories.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewValidationError("slug", "category slug is already in use")
	}

	var category *catalog.Category
	if raw, ok := own["parent"]; ok && raw != nil {
		parentSlug, ok := raw.(string)
		if !ok {
			return nil, shared.NewValidationError("parent", "must be a string")
		}
		parent, err := s.categories.FindBySlug(ctx, parentSlug)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("parent", fmt.Sprintf("unknown category slug %q", parentSlug))
			}
			return nil, err
		}
		category, err = catalog.NewChildCategory(name, slug, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(name, slug)
		if err != nil {
			return nil, err
		}
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug),
	)
	return category, nil
}

// Tree renders the subtree rooted at the given category. Children nest
// recursively; a leaf carries an empty children list, never null.
func (s *CategorySerializer) Tree(ctx context.Context, category *catalog.Category) (*serializer.Flat, error) {
	return s.node(ctx, category, make(map[uuid.UUID]bool))
}

// Forest renders every root category as a full subtree, in root order.
func (s *CategorySerializer) Forest(ctx context.Context) ([]*serializer.Flat, error) {
	roots, err := s.categories.FindRoots(ctx)
	if err != nil {
		return nil, err
	}
	trees := make([]*serializer.Flat, 0, len(roots))
	for i := range roots {
		tree, err := s.Tree(ctx, &roots[i])
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func (s *CategorySerializer) node(ctx context.Context, category *catalog.Category, visited map[uuid.UUID]bool) (*serializer.Flat, error) {
	// Parent links should form a tree; a revisited node means corrupted
	// data, and recursing on it would never terminate.
	if visited[category.ID] {
		return nil, shared.NewDomainError("CATEGORY_CYCLE", "category tree contains a cycle at "+category.Slug)
	}
	visited[category.ID] = true

	children, err := s.categories.FindChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	nodes := make([]*serializer.Flat, 0, len(children))
	for i := range children {
		child, err := s.node(ctx, &children[i], visited)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, child)
	}

	return s.tree.Collapse(serializer.Values{
		"name":     category.Name,
		"slug":     category.Slug,
		"children": nodes,
	}, nil)
}

// SerializeFlat renders the non-recursive shape with a parent slug
// reference instead of nested children.
func (s *CategorySerializer) SerializeFlat(ctx context.Context, category *catalog.Category) (*serializer.Flat, error) {
	var parent any
	if category.ParentID != nil {
		p, err := s.categories.FindByID(ctx, *category.ParentID)
		if err != nil {
			return nil, err
		}
		parent = p.Slug
	}
	return s.flat.Collapse(serializer.Values{
		"name":   category.Name,
		"slug":   category.Slug,
		"parent": parent,
	}, nil)
}
