package category

import "time"

// DefaultCategories returns the built-in category catalog seeded into an
// empty registry. Default categories are protected from deletion.
func DefaultCategories(now time.Time) []Category {
	defaults := []Category{
		{ID: "income-salary", Name: "Salary", Type: TypeIncome, Color: "#4CAF50", Icon: "💰"},
		{ID: "income-bonus", Name: "Bonus", Type: TypeIncome, Color: "#8BC34A", Icon: "🎁"},
		{ID: "income-investment", Name: "Investment Income", Type: TypeIncome, Color: "#CDDC39", Icon: "📈"},
		{ID: "income-other", Name: "Other Income", Type: TypeIncome, Color: "#FFC107", Icon: "💡"},
		{ID: "expense-food", Name: "Food & Dining", Type: TypeExpense, Color: "#FF5722", Icon: "🍔"},
		{ID: "expense-transport", Name: "Transport", Type: TypeExpense, Color: "#FF9800", Icon: "🚗"},
		{ID: "expense-shopping", Name: "Shopping", Type: TypeExpense, Color: "#F44336", Icon: "🛍️"},
		{ID: "expense-entertainment", Name: "Entertainment", Type: TypeExpense, Color: "#E91E63", Icon: "🎬"},
		{ID: "expense-education", Name: "Education", Type: TypeExpense, Color: "#9C27B0", Icon: "📚"},
		{ID: "expense-health", Name: "Healthcare", Type: TypeExpense, Color: "#673AB7", Icon: "🏥"},
		{ID: "expense-utilities", Name: "Utilities", Type: TypeExpense, Color: "#3F51B5", Icon: "💡"},
		{ID: "expense-rent", Name: "Rent", Type: TypeExpense, Color: "#2196F3", Icon: "🏠"},
		{ID: "expense-other", Name: "Other Expenses", Type: TypeExpense, Color: "#607D8B", Icon: "📋"},
	}

	for i := range defaults {
		defaults[i].IsDefault = true
		defaults[i].CreatedAt = now
	}
	return defaults
}

// ColorOptions lists the colors offered by the frontend category editor.
func ColorOptions() []string {
	return []string{
		"#F44336", "#E91E63", "#9C27B0", "#673AB7", "#3F51B5", "#2196F3",
		"#03A9F4", "#00BCD4", "#009688", "#4CAF50", "#8BC34A", "#CDDC39",
		"#FFEB3B", "#FFC107", "#FF9800", "#FF5722", "#795548", "#9E9E9E",
		"#607D8B",
	}
}

// IconOptions lists icon choices, optionally narrowed to one category type.
func IconOptions(categoryType CategoryType) []string {
	incomeIcons := []string{"💰", "💵", "💸", "💳", "🏆", "🎁", "📈", "💡", "⭐", "🌟"}
	expenseIcons := []string{"🍔", "🚗", "🛍️", "🎬", "📚", "🏥", "💡", "🏠", "📋", "💊", "✈️", "🎮"}

	switch categoryType {
	case TypeIncome:
		return incomeIcons
	case TypeExpense:
		return expenseIcons
	default:
		return append(append([]string{}, incomeIcons...), expenseIcons...)
	}
}
