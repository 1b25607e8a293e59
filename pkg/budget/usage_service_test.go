package budget

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransactionSource struct {
	transactions []transaction.Transaction
}

func (s *stubTransactionSource) List(_ context.Context, filter transaction.Filter) ([]transaction.Transaction, error) {
	result := []transaction.Transaction{}
	for _, t := range s.transactions {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if !filter.From.IsZero() && t.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && t.Date.After(filter.To) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

type stubCategorySource struct {
	categories []category.Category
}

func (s *stubCategorySource) List(_ context.Context, typeFilter category.CategoryType) ([]category.Category, error) {
	if typeFilter == "" {
		return s.categories, nil
	}
	result := []category.Category{}
	for _, c := range s.categories {
		if c.Type == typeFilter {
			result = append(result, c)
		}
	}
	return result, nil
}

func setupUsage(t *testing.T, ledger []transaction.Transaction) (*UsageServiceImpl, func()) {
	categories := &stubCategorySource{categories: []category.Category{
		{ID: "expense-food", Name: "Food", Type: category.TypeExpense},
		{ID: "expense-rent", Name: "Rent", Type: category.TypeExpense},
	}}
	service := NewUsageService(budgetRepoStub, &stubTransactionSource{transactions: ledger}, categories)
	service.clock = clock
	return service, func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func expense(categoryID string, amount int64, date time.Time) transaction.Transaction {
	return transaction.Transaction{
		Type:     transaction.TypeExpense,
		Category: categoryID,
		Amount:   decimal.NewFromInt(amount),
		Date:     date,
	}
}

func saveBudgets(t *testing.T, budgets ...Budget) {
	require.NoError(t, budgetRepoStub.SaveAll(ctx, budgets))
}

func storedBudget(categoryID string, amount int64, year int, month int) Budget {
	b := monthlyBudget(categoryID, amount, year, month)
	b.ID = categoryID
	b.AlertThreshold = DefaultAlertThreshold
	return b
}

func TestUsageService_Usage(t *testing.T) {
	march := func(day int) time.Time {
		return time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC)
	}

	t.Run("should sum expenses of the category within the period", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 400, march(5)),
			expense("expense-food", 500, march(20)),
		})
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		v := views[0]
		assert.True(t, decimal.NewFromInt(900).Equal(v.UsedAmount))
		assert.True(t, decimal.NewFromInt(100).Equal(v.RemainingAmount))
		assert.InDelta(t, 90.0, v.Percentage, 0.001)
		assert.True(t, v.IsNearLimit)
		assert.False(t, v.IsOverBudget)
		assert.Equal(t, 2, v.TransactionCount)
		require.NotNil(t, v.Category)
		assert.Equal(t, "Food", v.Category.Name)
	})

	t.Run("should not flag near limit below the threshold", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 400, march(5)),
		})
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].IsNearLimit)
		assert.False(t, views[0].IsOverBudget)
	})

	t.Run("should flag over budget and floor remaining at zero", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 400, march(5)),
			expense("expense-food", 500, march(12)),
			expense("expense-food", 200, march(28)),
		})
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		v := views[0]
		assert.True(t, decimal.NewFromInt(1100).Equal(v.UsedAmount))
		assert.True(t, decimal.Zero.Equal(v.RemainingAmount))
		assert.Equal(t, 100.0, v.Percentage)
		assert.True(t, v.IsOverBudget)
		assert.True(t, v.IsNearLimit)
	})

	t.Run("should ignore income, other categories and out-of-period expenses", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 300, march(5)),
			expense("expense-rent", 800, march(5)),
			expense("expense-food", 999, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)),
			expense("expense-food", 999, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
			{
				Type:     transaction.TypeIncome,
				Category: "expense-food",
				Amount:   decimal.NewFromInt(5000),
				Date:     march(10),
			},
		})
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, decimal.NewFromInt(300).Equal(views[0].UsedAmount))
		assert.Equal(t, 1, views[0].TransactionCount)
	})

	t.Run("should report zero percentage for zero-amount budget", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 50, march(5)),
		})
		defer teardown()
		// Only reachable through imported data; Set rejects zero amounts.
		saveBudgets(t, Budget{
			ID:       "imported",
			Category: "expense-food",
			Amount:   decimal.Zero,
			Period:   PeriodMonthly,
			Year:     2024,
			Month:    monthPtr(3),
		})

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, 0.0, views[0].Percentage)
		assert.True(t, views[0].IsOverBudget)
	})

	t.Run("should include yearly budgets for any month of their year", func(t *testing.T) {
		service, teardown := setupUsage(t, nil)
		defer teardown()
		saveBudgets(t,
			Budget{ID: "y", Category: "expense-rent", Amount: decimal.NewFromInt(12000), Period: PeriodYearly, Year: 2024},
			monthlyBudget("expense-food", 1000, 2024, 4),
		)

		// when
		views, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, PeriodYearly, views[0].Budget.Period)
	})

	t.Run("should default to the current period when year is zero", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 100, march(5)),
		})
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		views, err := service.Usage(ctx, 0, 0)

		// then
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, decimal.NewFromInt(100).Equal(views[0].UsedAmount))
	})

	t.Run("should not depend on transaction order", func(t *testing.T) {
		ledger := []transaction.Transaction{
			expense("expense-food", 400, march(5)),
			expense("expense-food", 500, march(20)),
			expense("expense-food", 25, march(1)),
		}
		reversed := []transaction.Transaction{ledger[2], ledger[1], ledger[0]}

		service, teardown := setupUsage(t, ledger)
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))
		forward, err := service.Usage(ctx, 2024, 3)
		require.NoError(t, err)
		teardown()

		service, teardown = setupUsage(t, reversed)
		defer teardown()
		saveBudgets(t, storedBudget("expense-food", 1000, 2024, 3))

		// when
		backward, err := service.Usage(ctx, 2024, 3)

		// then
		require.NoError(t, err)
		require.Len(t, forward, 1)
		require.Len(t, backward, 1)
		assert.True(t, forward[0].UsedAmount.Equal(backward[0].UsedAmount))
		assert.Equal(t, forward[0].TransactionCount, backward[0].TransactionCount)
	})
}

func TestComputeStats(t *testing.T) {
	t.Run("should count over-budget and near-limit exclusively", func(t *testing.T) {
		views := []UsageView{
			{Budget: Budget{Amount: decimal.NewFromInt(1000)}, UsedAmount: decimal.NewFromInt(1100), IsOverBudget: true, IsNearLimit: true},
			{Budget: Budget{Amount: decimal.NewFromInt(1000)}, UsedAmount: decimal.NewFromInt(900), IsNearLimit: true},
			{Budget: Budget{Amount: decimal.NewFromInt(1000)}, UsedAmount: decimal.NewFromInt(100)},
		}

		// when
		stats := ComputeStats(views)

		// then
		assert.Equal(t, 3, stats.BudgetCount)
		assert.Equal(t, 1, stats.OverBudgetCount)
		assert.Equal(t, 1, stats.NearLimitCount)
		assert.True(t, decimal.NewFromInt(3000).Equal(stats.TotalBudget))
		assert.True(t, decimal.NewFromInt(2100).Equal(stats.TotalUsed))
		assert.True(t, decimal.NewFromInt(900).Equal(stats.TotalRemaining))
		assert.InDelta(t, 70.0, stats.OverallPercentage, 0.001)
	})

	t.Run("should handle empty input", func(t *testing.T) {
		stats := ComputeStats(nil)

		assert.Equal(t, 0, stats.BudgetCount)
		assert.Equal(t, 0.0, stats.OverallPercentage)
		assert.True(t, decimal.Zero.Equal(stats.TotalRemaining))
	})
}

func TestUsageService_Suggestions(t *testing.T) {
	t.Run("should derive estimates from trailing six months of expenses", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 200, time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC)),
			expense("expense-food", 250, time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC)),
			expense("expense-food", 150, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)),
			// Older than six months, must not count.
			expense("expense-food", 9999, time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)),
			// Different category, must not count.
			expense("expense-rent", 9999, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		})
		defer teardown()

		// when
		suggestion, err := service.Suggestions(ctx, "expense-food")

		// then
		require.NoError(t, err)
		require.NotNil(t, suggestion)
		// 600 over six months: average 100, padded 120, conservative 90.
		assert.True(t, decimal.NewFromInt(100).Equal(suggestion.AverageMonthly))
		assert.True(t, decimal.NewFromInt(120).Equal(suggestion.MaxMonthly))
		assert.True(t, decimal.NewFromInt(90).Equal(suggestion.Conservative))
		assert.Equal(t, 3, suggestion.TransactionCount)
	})

	t.Run("should round the average up to a whole amount", func(t *testing.T) {
		service, teardown := setupUsage(t, []transaction.Transaction{
			expense("expense-food", 100, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)),
		})
		defer teardown()

		// when
		suggestion, err := service.Suggestions(ctx, "expense-food")

		// then
		require.NoError(t, err)
		require.NotNil(t, suggestion)
		// 100 / 6 = 16.67, rounded up.
		assert.True(t, decimal.NewFromInt(17).Equal(suggestion.AverageMonthly))
	})

	t.Run("should return nil when the category has no recent expenses", func(t *testing.T) {
		service, teardown := setupUsage(t, nil)
		defer teardown()

		// when
		suggestion, err := service.Suggestions(ctx, "expense-food")

		// then
		require.NoError(t, err)
		assert.Nil(t, suggestion)
	})
}
