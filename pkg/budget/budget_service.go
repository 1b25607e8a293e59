package budget

import (
	"context"
	"fmt"
	"sort"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultAlertThreshold is the near-limit percentage used when a budget is
// stored without an explicit threshold.
const DefaultAlertThreshold = 80

type BudgetService interface {
	List(ctx context.Context) ([]Budget, error)
	// Set stores a budget, overwriting in place (same id, same createdAt)
	// when one already exists for the (category, period, year, month) tuple.
	Set(ctx context.Context, budget Budget) (Budget, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, id string) error
	GetForCategory(ctx context.Context, categoryID string, period Period, year int, month int) (Budget, error)
	HasBudgetForCategory(ctx context.Context, categoryID string, period Period, year int, month int) (bool, error)
	// History lists every budget of a category, newest period first, with
	// yearly budgets ahead of monthly ones within a year.
	History(ctx context.Context, categoryID string) ([]Budget, error)
	// CopyLastMonthBudgets copies the prior month's monthly budgets into the
	// given month, skipping categories that already have one. Passing zero
	// year defaults to the current month. Idempotent.
	CopyLastMonthBudgets(ctx context.Context, year int, month int) ([]Budget, error)
	ResetAll(ctx context.Context) error
}

type BudgetServiceImpl struct {
	repo             BudgetRepo
	bus              *event_bus.EventBus
	clock            utils.Clock
	defaultThreshold int
}

func NewBudgetService(repo BudgetRepo, bus *event_bus.EventBus, defaultThreshold int) *BudgetServiceImpl {
	if defaultThreshold <= 0 || defaultThreshold > 100 {
		defaultThreshold = DefaultAlertThreshold
	}
	return &BudgetServiceImpl{
		repo:             repo,
		bus:              bus,
		clock:            &utils.SystemClock{},
		defaultThreshold: defaultThreshold,
	}
}

func (s *BudgetServiceImpl) List(ctx context.Context) ([]Budget, error) {
	return s.repo.GetAll(ctx)
}

func (s *BudgetServiceImpl) Set(ctx context.Context, budget Budget) (Budget, error) {
	if err := s.normalize(&budget); err != nil {
		return Budget{}, err
	}

	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}

	now := s.clock.Now()
	for i, existing := range budgets {
		if !existing.sameTuple(budget) {
			continue
		}

		budget.ID = existing.ID
		budget.CreatedAt = existing.CreatedAt
		budget.UpdatedAt = now
		budgets[i] = budget

		if err := s.repo.SaveAll(ctx, budgets); err != nil {
			return Budget{}, err
		}
		s.publish(ctx, event_bus.BudgetSet, budget)
		return budget, nil
	}

	budget.ID = uuid.NewString()
	budget.CreatedAt = now
	budget.UpdatedAt = now
	budgets = append(budgets, budget)

	if err := s.repo.SaveAll(ctx, budgets); err != nil {
		return Budget{}, err
	}
	s.publish(ctx, event_bus.BudgetSet, budget)
	return budget, nil
}

func (s *BudgetServiceImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	if err := s.normalize(&budget); err != nil {
		return Budget{}, err
	}

	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}

	for i, existing := range budgets {
		if existing.ID != budget.ID {
			continue
		}

		budget.CreatedAt = existing.CreatedAt
		budget.UpdatedAt = s.clock.Now()
		budgets[i] = budget

		if err := s.repo.SaveAll(ctx, budgets); err != nil {
			return Budget{}, err
		}
		s.publish(ctx, event_bus.BudgetUpdated, budget)
		return budget, nil
	}

	return Budget{}, ErrBudgetNotFound
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id string) error {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range budgets {
		if existing.ID != id {
			continue
		}

		budgets = append(budgets[:i], budgets[i+1:]...)
		if err := s.repo.SaveAll(ctx, budgets); err != nil {
			return err
		}
		s.publish(ctx, event_bus.BudgetDeleted, existing)
		return nil
	}

	return ErrBudgetNotFound
}

func (s *BudgetServiceImpl) GetForCategory(ctx context.Context, categoryID string, period Period, year int, month int) (Budget, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}

	probe := Budget{Category: categoryID, Period: period, Year: year, Month: &month}
	for _, b := range budgets {
		if b.sameTuple(probe) {
			return b, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (s *BudgetServiceImpl) HasBudgetForCategory(ctx context.Context, categoryID string, period Period, year int, month int) (bool, error) {
	_, err := s.GetForCategory(ctx, categoryID, period, year, month)
	if err != nil {
		if err == ErrBudgetNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *BudgetServiceImpl) History(ctx context.Context, categoryID string) ([]Budget, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.Category == categoryID {
			history = append(history, b)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		a, b := history[i], history[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Period != b.Period {
			return a.Period == PeriodYearly
		}
		return monthOf(a) > monthOf(b)
	})
	return history, nil
}

func (s *BudgetServiceImpl) CopyLastMonthBudgets(ctx context.Context, year int, month int) ([]Budget, error) {
	if year == 0 {
		now := s.clock.Now()
		year, month = now.Year(), int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	lastYear, lastMonth := year, month-1
	if month == 1 {
		lastYear, lastMonth = year-1, 12
	}

	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	created := []Budget{}
	for _, b := range budgets {
		if !(b.Period == PeriodMonthly && b.Year == lastYear && b.Month != nil && *b.Month == lastMonth) {
			continue
		}

		target := Budget{Category: b.Category, Period: PeriodMonthly, Year: year, Month: &month}
		if hasTuple(budgets, target) || hasTuple(created, target) {
			continue
		}

		targetMonth := month
		copied := Budget{
			ID:             uuid.NewString(),
			Category:       b.Category,
			Amount:         b.Amount,
			Period:         PeriodMonthly,
			Year:           year,
			Month:          &targetMonth,
			AlertThreshold: b.AlertThreshold,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		created = append(created, copied)
	}

	if len(created) == 0 {
		log.Debugf("no budgets to roll over into %d-%02d", year, month)
		return created, nil
	}

	if err := s.repo.SaveAll(ctx, append(budgets, created...)); err != nil {
		return nil, err
	}
	for _, b := range created {
		s.publish(ctx, event_bus.BudgetSet, b)
	}
	log.Infof("rolled over %d budget(s) into %d-%02d", len(created), year, month)
	return created, nil
}

func (s *BudgetServiceImpl) ResetAll(ctx context.Context) error {
	return s.repo.SaveAll(ctx, []Budget{})
}

// normalize validates the budget and applies defaults: yearly budgets carry
// no month, a zero threshold becomes the configured default.
func (s *BudgetServiceImpl) normalize(b *Budget) error {
	if !b.Period.IsValid() {
		return fmt.Errorf("invalid budget period %q", b.Period)
	}
	if b.Category == "" {
		return fmt.Errorf("budget must reference a category")
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("budget amount must be positive")
	}
	if b.Period == PeriodMonthly {
		if b.Month == nil || *b.Month < 1 || *b.Month > 12 {
			return fmt.Errorf("monthly budget requires a month between 1 and 12")
		}
	} else {
		b.Month = nil
	}
	if b.AlertThreshold == 0 {
		b.AlertThreshold = s.defaultThreshold
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return fmt.Errorf("alert threshold must be between 0 and 100")
	}
	return nil
}

func monthOf(b Budget) int {
	if b.Month == nil {
		return 0
	}
	return *b.Month
}

func hasTuple(budgets []Budget, probe Budget) bool {
	for _, b := range budgets {
		if b.sameTuple(probe) {
			return true
		}
	}
	return false
}

func (s *BudgetServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, b Budget) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, b)); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
