package budget

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// TransactionSource is the slice of the ledger the aggregator needs.
type TransactionSource interface {
	List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error)
}

// CategorySource is the slice of the category registry the aggregator needs.
type CategorySource interface {
	List(ctx context.Context, typeFilter category.CategoryType) ([]category.Category, error)
}

// UsageService computes derived budget views. Every call takes a fresh
// snapshot of the three source collections; nothing is cached, so results
// are always consistent with the current ledger state.
type UsageService interface {
	// Usage returns one view per budget matching the given period. A zero
	// year defaults to the period containing "now".
	Usage(ctx context.Context, year int, month int) ([]UsageView, error)
	Stats(ctx context.Context, year int, month int) (UsageStats, error)
	Alerts(ctx context.Context, year int, month int) ([]Alert, error)
	// Suggestions estimates a monthly budget for a category from its
	// trailing six months of expenses. Returns nil when there is no data.
	Suggestions(ctx context.Context, categoryID string) (*Suggestion, error)
	CurrentPeriod() (year int, month int)
}

type UsageServiceImpl struct {
	budgetRepo   BudgetRepo
	transactions TransactionSource
	categories   CategorySource
	clock        utils.Clock
}

func NewUsageService(budgetRepo BudgetRepo, transactions TransactionSource, categories CategorySource) *UsageServiceImpl {
	return &UsageServiceImpl{
		budgetRepo:   budgetRepo,
		transactions: transactions,
		categories:   categories,
		clock:        &utils.SystemClock{},
	}
}

func (s *UsageServiceImpl) CurrentPeriod() (int, int) {
	now := s.clock.Now()
	return now.Year(), int(now.Month())
}

func (s *UsageServiceImpl) Usage(ctx context.Context, year int, month int) ([]UsageView, error) {
	if year == 0 {
		year, month = s.CurrentPeriod()
	}

	budgets, err := s.budgetRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.transactions.List(ctx, transaction.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := s.categories.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	categoriesByID := make(map[string]category.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	views := make([]UsageView, 0, len(budgets))
	for _, b := range budgets {
		if !b.InPeriod(year, month) {
			continue
		}
		views = append(views, computeUsage(b, ledger, categoriesByID))
	}
	log.Tracef("computed %d usage view(s) for period %d-%02d", len(views), year, month)
	return views, nil
}

// computeUsage joins one budget against the ledger snapshot. The reported
// percentage is clamped to 100; the near-limit check uses the raw value.
func computeUsage(b Budget, ledger []transaction.Transaction, categoriesByID map[string]category.Category) UsageView {
	start, end := b.PeriodRange()

	used := decimal.Zero
	count := 0
	for _, t := range ledger {
		if t.Type != transaction.TypeExpense || t.Category != b.Category {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		used = used.Add(t.Amount)
		count++
	}

	rawPercentage := 0.0
	if b.Amount.IsPositive() {
		rawPercentage = used.Div(b.Amount).InexactFloat64() * 100
	}
	percentage := rawPercentage
	if percentage > 100 {
		percentage = 100
	}

	remaining := b.Amount.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	view := UsageView{
		Budget:           b,
		UsedAmount:       used,
		RemainingAmount:  remaining,
		Percentage:       percentage,
		IsOverBudget:     used.GreaterThan(b.Amount),
		IsNearLimit:      rawPercentage >= float64(b.AlertThreshold),
		TransactionCount: count,
	}
	if c, ok := categoriesByID[b.Category]; ok {
		view.Category = &c
	}
	return view
}

func (s *UsageServiceImpl) Stats(ctx context.Context, year int, month int) (UsageStats, error) {
	views, err := s.Usage(ctx, year, month)
	if err != nil {
		return UsageStats{}, err
	}
	return ComputeStats(views), nil
}

// ComputeStats aggregates usage views. Near-limit and over-budget are
// mutually exclusive in the counters even though a single view can carry
// both flags.
func ComputeStats(views []UsageView) UsageStats {
	stats := UsageStats{
		TotalBudget:    decimal.Zero,
		TotalUsed:      decimal.Zero,
		TotalRemaining: decimal.Zero,
		BudgetCount:    len(views),
	}

	for _, v := range views {
		stats.TotalBudget = stats.TotalBudget.Add(v.Budget.Amount)
		stats.TotalUsed = stats.TotalUsed.Add(v.UsedAmount)
		if v.IsOverBudget {
			stats.OverBudgetCount++
		} else if v.IsNearLimit {
			stats.NearLimitCount++
		}
	}

	stats.TotalRemaining = stats.TotalBudget.Sub(stats.TotalUsed)
	if stats.TotalRemaining.IsNegative() {
		stats.TotalRemaining = decimal.Zero
	}
	if stats.TotalBudget.IsPositive() {
		stats.OverallPercentage = stats.TotalUsed.Div(stats.TotalBudget).InexactFloat64() * 100
	}
	return stats
}

func (s *UsageServiceImpl) Alerts(ctx context.Context, year int, month int) ([]Alert, error) {
	views, err := s.Usage(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return FormatAlerts(views), nil
}

func (s *UsageServiceImpl) Suggestions(ctx context.Context, categoryID string) (*Suggestion, error) {
	sixMonthsAgo := s.clock.Now().AddDate(0, -6, 0)

	expenses, err := s.transactions.List(ctx, transaction.Filter{
		Type:     transaction.TypeExpense,
		Category: categoryID,
		From:     sixMonthsAgo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}

	total := decimal.Zero
	for _, t := range expenses {
		total = total.Add(t.Amount)
	}

	// The divisor is always 6, not the number of months with activity.
	average := total.Div(decimal.NewFromInt(6))

	return &Suggestion{
		AverageMonthly:   average.Ceil(),
		MaxMonthly:       average.Mul(decimal.NewFromFloat(1.2)).Ceil(),
		Conservative:     average.Mul(decimal.NewFromFloat(0.9)).Ceil(),
		TransactionCount: len(expenses),
	}, nil
}
