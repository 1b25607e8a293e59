package budget

import (
	"testing"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageView(id string, name string, amount int64, used int64, percentage float64, over bool, near bool) UsageView {
	view := UsageView{
		Budget: Budget{
			ID:       id,
			Category: "cat-" + id,
			Amount:   decimal.NewFromInt(amount),
		},
		UsedAmount:   decimal.NewFromInt(used),
		Percentage:   percentage,
		IsOverBudget: over,
		IsNearLimit:  near,
	}
	if name != "" {
		view.Category = &category.Category{ID: "cat-" + id, Name: name}
	}
	return view
}

func TestFormatAlerts(t *testing.T) {
	t.Run("should emit danger alert with rounded overage", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "Food", 1000, 1100, 100, true, true),
		}

		// when
		alerts := FormatAlerts(views)

		// then
		require.Len(t, alerts, 1)
		assert.Equal(t, SeverityDanger, alerts[0].Severity)
		assert.Equal(t, "Food is over budget by 100", alerts[0].Message)
		assert.Equal(t, 100, alerts[0].Percentage)
		assert.Equal(t, "b1", alerts[0].BudgetID)
	})

	t.Run("should emit warning alert with spent percentage", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "Food", 1000, 900, 90, false, true),
		}

		// when
		alerts := FormatAlerts(views)

		// then
		require.Len(t, alerts, 1)
		assert.Equal(t, SeverityWarning, alerts[0].Severity)
		assert.Equal(t, "Food budget is nearly used up: 90% spent", alerts[0].Message)
	})

	t.Run("should round percentage to nearest integer", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "Food", 1000, 856, 85.6, false, true),
		}

		alerts := FormatAlerts(views)

		require.Len(t, alerts, 1)
		assert.Equal(t, 86, alerts[0].Percentage)
	})

	t.Run("should fall back to a placeholder for a missing category", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "", 1000, 1200, 100, true, true),
		}

		// when
		alerts := FormatAlerts(views)

		// then
		require.Len(t, alerts, 1)
		assert.Equal(t, UnknownCategoryName, alerts[0].CategoryName)
		assert.Equal(t, "unknown category is over budget by 200", alerts[0].Message)
	})

	t.Run("should skip healthy budgets", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "Food", 1000, 200, 20, false, false),
		}

		alerts := FormatAlerts(views)

		assert.Empty(t, alerts)
	})

	t.Run("should sort by percentage descending keeping ties stable", func(t *testing.T) {
		views := []UsageView{
			usageView("b1", "Food", 1000, 850, 85, false, true),
			usageView("b2", "Rent", 1000, 1200, 100, true, true),
			usageView("b3", "Fun", 1000, 850, 85, false, true),
		}

		// when
		alerts := FormatAlerts(views)

		// then
		require.Len(t, alerts, 3)
		assert.Equal(t, "b2", alerts[0].BudgetID)
		assert.Equal(t, "b1", alerts[1].BudgetID)
		assert.Equal(t, "b3", alerts[2].BudgetID)
	})
}
