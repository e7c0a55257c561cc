package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root with lowercased slug", func(t *testing.T) {
		category, err := NewCategory("Fruit", "Fruit")
		require.NoError(t, err)
		assert.Equal(t, "fruit", category.Slug)
		assert.True(t, category.IsRoot())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("", "fruit")
		assert.Error(t, err)
	})

	t.Run("rejects slug with invalid characters", func(t *testing.T) {
		_, err := NewCategory("Fruit", "fresh fruit!")
		assert.Error(t, err)
	})

	t.Run("rejects overlong name and slug", func(t *testing.T) {
		long := strings.Repeat("a", 101)
		_, err := NewCategory(long, "fruit")
		assert.Error(t, err)
		_, err = NewCategory("Fruit", long)
		assert.Error(t, err)
	})
}

func TestNewChildCategory(t *testing.T) {
	parent, err := NewCategory("Fruit", "fruit")
	require.NoError(t, err)

	child, err := NewChildCategory("Citrus", "citrus", parent)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
	assert.False(t, child.IsRoot())

	_, err = NewChildCategory("Citrus", "citrus", nil)
	assert.Error(t, err)
}

func TestCategory_Rename(t *testing.T) {
	category, err := NewCategory("Fruit", "fruit")
	require.NoError(t, err)

	require.NoError(t, category.Rename("Fresh Fruit"))
	assert.Equal(t, "Fresh Fruit", category.Name)

	assert.Error(t, category.Rename(""))
}
