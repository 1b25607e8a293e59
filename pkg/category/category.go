package category

import (
	"errors"
	"time"
)

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
)

func (t CategoryType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProtectedCategory = errors.New("default categories cannot be deleted")
)

// Category is a classification bucket for transactions and budgets. The JSON
// field names are part of the persistence and export contract.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Color       string       `json:"color"`
	Icon        string       `json:"icon"`
	Description string       `json:"description,omitempty"`
	IsDefault   bool         `json:"isDefault"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
