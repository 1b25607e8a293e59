package category

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()
var categoryRepoStub = NewStubCategoryRepo()
var clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (CategoryService, func()) {
	service := NewCategoryService(categoryRepoStub, event_bus.NewEventBus())
	service.clock = clock
	return service, func() {
		t.Log("Teardown after test")
		categoryRepoStub.Cleanup()
	}
}

func TestCategoryService_List(t *testing.T) {
	t.Run("should list all categories", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		categories, err := service.List(ctx, "")

		// then
		assert.NoError(t, err)
		assert.Len(t, categories, 13)
	})

	t.Run("should filter categories by type", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		income, err := service.List(ctx, TypeIncome)

		// then
		assert.NoError(t, err)
		assert.Len(t, income, 4)
		for _, c := range income {
			assert.Equal(t, TypeIncome, c.Type)
		}
	})
}

func TestCategoryService_Create(t *testing.T) {
	t.Run("should create category with generated id and defaults", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Category{Name: "Pets", Type: TypeExpense})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.IsDefault)
		assert.Equal(t, "#607D8B", created.Color)
		assert.Equal(t, "📋", created.Icon)
		assert.Equal(t, clock.FixedNow, created.CreatedAt)

		found, err := service.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pets", found.Name)
	})

	t.Run("should reject invalid category type", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Category{Name: "Broken", Type: "savings"})

		// then
		assert.Error(t, err)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Category{Name: "  ", Type: TypeExpense})

		// then
		assert.Error(t, err)
	})
}

func TestCategoryService_Update(t *testing.T) {
	t.Run("should update an existing category", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, Category{Name: "Pets", Type: TypeExpense})
		require.NoError(t, err)

		// when
		updated, err := service.Update(ctx, Category{ID: created.ID, Name: "Pet Care", Type: TypeExpense, Color: "#009688", Icon: "💊"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Pet Care", updated.Name)
		assert.Equal(t, "#009688", updated.Color)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Update(ctx, Category{ID: "missing", Name: "X", Type: TypeExpense})

		// then
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("should delete a user category", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, Category{Name: "Pets", Type: TypeExpense})
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		_, err = service.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("should refuse to delete a default category", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, "expense-food")

		// then
		assert.ErrorIs(t, err, ErrProtectedCategory)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, "missing")

		// then
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestCategoryService_Search(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	// when
	matches, err := service.Search(ctx, "inc")

	// then
	assert.NoError(t, err)
	assert.NotEmpty(t, matches)
	for _, c := range matches {
		assert.Contains(t, []CategoryType{TypeIncome}, c.Type)
	}
}

func TestCategoryService_IsNameTaken(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	taken, err := service.IsNameTaken(ctx, "Salary", "")
	assert.NoError(t, err)
	assert.True(t, taken)

	taken, err = service.IsNameTaken(ctx, "Salary", "income-salary")
	assert.NoError(t, err)
	assert.False(t, taken)
}

func TestCategoryService_ResetToDefaults(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	// given
	_, err := service.Create(ctx, Category{Name: "Pets", Type: TypeExpense})
	require.NoError(t, err)

	// when
	defaults, err := service.ResetToDefaults(ctx)

	// then
	require.NoError(t, err)
	assert.Len(t, defaults, 13)
	all, err := service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 13)
}
