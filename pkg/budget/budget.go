package budget

import (
	"errors"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) IsValid() bool {
	return p == PeriodMonthly || p == PeriodYearly
}

var ErrBudgetNotFound = errors.New("budget not found")

// Budget is a spending limit for one category over one calendar period.
// Month is nil exactly when Period is yearly. At most one budget exists per
// (category, period, year, month) tuple; Set overwrites in place. The JSON
// field names are part of the persistence and export contract.
type Budget struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Period         Period          `json:"period"`
	Year           int             `json:"year"`
	Month          *int            `json:"month"`
	AlertThreshold int             `json:"alertThreshold"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PeriodRange resolves the inclusive date interval the budget governs.
// Month lengths and leap years come from calendar arithmetic, never from
// hard-coded day counts.
func (b Budget) PeriodRange() (time.Time, time.Time) {
	if b.Period == PeriodYearly {
		start := time.Date(b.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return start, end
	}

	month := time.January
	if b.Month != nil {
		month = time.Month(*b.Month)
	}
	start := time.Date(b.Year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// InPeriod reports whether the budget belongs to the given current period:
// yearly budgets match on year alone, monthly budgets on year and month.
func (b Budget) InPeriod(year int, month int) bool {
	if b.Period == PeriodYearly {
		return b.Year == year
	}
	return b.Year == year && b.Month != nil && *b.Month == month
}

// sameTuple reports whether two budgets occupy the same identity tuple
// (category, period, year, month). Month is ignored for yearly budgets.
func (b Budget) sameTuple(other Budget) bool {
	if b.Category != other.Category || b.Period != other.Period || b.Year != other.Year {
		return false
	}
	if b.Period == PeriodYearly {
		return true
	}
	return b.Month != nil && other.Month != nil && *b.Month == *other.Month
}

// UsageView is the derived per-budget consumption view. It is recomputed
// from the source collections on every read and never persisted.
// Percentage is clamped to 100 for display; IsNearLimit is evaluated on the
// unclamped value, so the threshold stays meaningful past 100%.
type UsageView struct {
	Budget           Budget             `json:"budget"`
	Category         *category.Category `json:"category,omitempty"`
	UsedAmount       decimal.Decimal    `json:"usedAmount"`
	RemainingAmount  decimal.Decimal    `json:"remainingAmount"`
	Percentage       float64            `json:"percentage"`
	IsOverBudget     bool               `json:"isOverBudget"`
	IsNearLimit      bool               `json:"isNearLimit"`
	TransactionCount int                `json:"transactionCount"`
}

// UsageStats aggregates a set of usage views. NearLimitCount excludes
// budgets that are already over budget.
type UsageStats struct {
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	TotalUsed         decimal.Decimal `json:"totalUsed"`
	TotalRemaining    decimal.Decimal `json:"totalRemaining"`
	OverallPercentage float64         `json:"overallPercentage"`
	BudgetCount       int             `json:"budgetCount"`
	OverBudgetCount   int             `json:"overBudgetCount"`
	NearLimitCount    int             `json:"nearLimitCount"`
}

// Suggestion is a budget estimate derived from the trailing six months of
// spending in a category. Absence of a suggestion (no matching spend at all)
// is represented by a nil *Suggestion, not a zero-valued one.
type Suggestion struct {
	AverageMonthly   decimal.Decimal `json:"averageMonthly"`
	MaxMonthly       decimal.Decimal `json:"maxMonthly"`
	Conservative     decimal.Decimal `json:"conservative"`
	TransactionCount int             `json:"transactionCount"`
}
