package category

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepo(t *testing.T) {
	t.Run("should seed the default catalog into an empty store", func(t *testing.T) {
		store := test_utils.NewInMemoryStore(t)
		repo := NewCategoryRepo(store)

		// when
		categories, err := repo.GetAll(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, categories, 13)

		// the seed is persisted, not recomputed per call
		blob, err := store.Get(context.Background(), storage.KeyCategories)
		require.NoError(t, err)
		assert.NotEmpty(t, blob)
	})

	t.Run("should persist and reload a custom catalog", func(t *testing.T) {
		store := test_utils.NewInMemoryStore(t)
		repo := NewCategoryRepo(store)

		// when
		require.NoError(t, repo.SaveAll(context.Background(), []Category{
			{ID: "c1", Name: "Pets", Type: TypeExpense},
		}))
		categories, err := repo.GetAll(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Pets", categories[0].Name)
	})

	t.Run("should fall back to defaults when stored blob is unreadable", func(t *testing.T) {
		store := test_utils.NewInMemoryStore(t)
		repo := NewCategoryRepo(store)
		require.NoError(t, store.Set(context.Background(), storage.KeyCategories, []byte("not json")))

		// when
		categories, err := repo.GetAll(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, categories, 13)
	})
}
