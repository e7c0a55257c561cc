package persistence

import (
	"context"
	"testing"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCategoryRepository_Slug(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	category, err := catalog.NewCategory("Fruit", "Fruit")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	t.Run("slug lookup is stored lowercase", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "fruit")
		require.NoError(t, err)
		assert.Equal(t, category.ID, found.ID)
	})

	t.Run("existence check", func(t *testing.T) {
		exists, err := repo.ExistsBySlug(ctx, "fruit")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySlug(ctx, "vegetables")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown slug yields ErrNotFound", func(t *testing.T) {
		_, err := repo.FindBySlug(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCategoryRepository_Hierarchy(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	fruit, err := catalog.NewCategory("Fruit", "fruit")
	require.NoError(t, err)
	veg, err := catalog.NewCategory("Vegetables", "vegetables")
	require.NoError(t, err)
	citrus, err := catalog.NewChildCategory("Citrus", "citrus", fruit)
	require.NoError(t, err)
	berries, err := catalog.NewChildCategory("Berries", "berries", fruit)
	require.NoError(t, err)

	for _, c := range []*catalog.Category{veg, fruit, citrus, berries} {
		require.NoError(t, repo.Save(ctx, c))
	}

	t.Run("roots are ordered by name", func(t *testing.T) {
		roots, err := repo.FindRoots(ctx)
		require.NoError(t, err)
		require.Len(t, roots, 2)
		assert.Equal(t, "fruit", roots[0].Slug)
		assert.Equal(t, "vegetables", roots[1].Slug)
	})

	t.Run("children are ordered by name", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, fruit.ID)
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, "berries", children[0].Slug)
		assert.Equal(t, "citrus", children[1].Slug)
	})

	t.Run("leaf has no children", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, citrus.ID)
		require.NoError(t, err)
		assert.Empty(t, children)
	})
}
