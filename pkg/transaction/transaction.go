package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is a single ledger entry. Category is a weak reference to a
// category id; the referenced category may no longer exist. The JSON field
// names are part of the persistence and export contract.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Filter narrows a ledger listing. Zero values leave the dimension
// unconstrained; From/To are inclusive.
type Filter struct {
	Type     TransactionType
	Category string
	From     time.Time
	To       time.Time
}

func (f Filter) matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// Summary aggregates the ledger for the dashboard: lifetime totals plus
// counts and totals for the month containing "now".
type Summary struct {
	Balance        decimal.Decimal `json:"balance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlyCounts  MonthlyCounts   `json:"monthlyCounts"`
}

type MonthlyCounts struct {
	IncomeCount  int `json:"incomeCount"`
	ExpenseCount int `json:"expenseCount"`
	TotalCount   int `json:"totalCount"`
}
