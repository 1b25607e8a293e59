package transaction

import (
	"context"
	"fmt"
	"sort"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionService interface {
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Add(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (Summary, error)
	Recent(ctx context.Context, limit int) ([]Transaction, error)
}

type TransactionServiceImpl struct {
	repo  TransactionRepo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewTransactionService(repo TransactionRepo, bus *event_bus.EventBus) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		repo:  repo,
		bus:   bus,
		clock: &utils.SystemClock{},
	}
}

func (s *TransactionServiceImpl) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filter.matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *TransactionServiceImpl) GetByID(ctx context.Context, id string) (Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	for _, t := range transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

func (s *TransactionServiceImpl) Add(ctx context.Context, transaction Transaction) (Transaction, error) {
	if err := validate(transaction); err != nil {
		return Transaction{}, err
	}

	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	transaction.ID = uuid.NewString()
	transaction.CreatedAt = s.clock.Now()
	transaction.UpdatedAt = transaction.CreatedAt

	transactions = append(transactions, transaction)
	if err := s.repo.SaveAll(ctx, transactions); err != nil {
		return Transaction{}, err
	}

	s.publish(ctx, event_bus.TransactionCreated, transaction)
	return transaction, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, transaction Transaction) (Transaction, error) {
	if err := validate(transaction); err != nil {
		return Transaction{}, err
	}

	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	for i, existing := range transactions {
		if existing.ID != transaction.ID {
			continue
		}

		updated := existing
		updated.Date = transaction.Date
		updated.Type = transaction.Type
		updated.Category = transaction.Category
		updated.Amount = transaction.Amount
		updated.Description = transaction.Description
		updated.Tags = transaction.Tags
		updated.UpdatedAt = s.clock.Now()

		transactions[i] = updated
		if err := s.repo.SaveAll(ctx, transactions); err != nil {
			return Transaction{}, err
		}
		s.publish(ctx, event_bus.TransactionUpdated, updated)
		return updated, nil
	}

	return Transaction{}, ErrTransactionNotFound
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) error {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range transactions {
		if existing.ID != id {
			continue
		}

		transactions = append(transactions[:i], transactions[i+1:]...)
		if err := s.repo.SaveAll(ctx, transactions); err != nil {
			return err
		}
		s.publish(ctx, event_bus.TransactionDeleted, existing)
		return nil
	}

	return ErrTransactionNotFound
}

func (s *TransactionServiceImpl) Summary(ctx context.Context) (Summary, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.clock.Now()
	summary := Summary{
		Balance:        decimal.Zero,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		MonthlyIncome:  decimal.Zero,
		MonthlyExpense: decimal.Zero,
	}

	for _, t := range transactions {
		inCurrentMonth := t.Date.Year() == now.Year() && t.Date.Month() == now.Month()

		switch t.Type {
		case TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			summary.Balance = summary.Balance.Add(t.Amount)
			if inCurrentMonth {
				summary.MonthlyIncome = summary.MonthlyIncome.Add(t.Amount)
				summary.MonthlyCounts.IncomeCount++
			}
		case TypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			summary.Balance = summary.Balance.Sub(t.Amount)
			if inCurrentMonth {
				summary.MonthlyExpense = summary.MonthlyExpense.Add(t.Amount)
				summary.MonthlyCounts.ExpenseCount++
			}
		}
		if inCurrentMonth {
			summary.MonthlyCounts.TotalCount++
		}
	}

	return summary, nil
}

func (s *TransactionServiceImpl) Recent(ctx context.Context, limit int) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func validate(t Transaction) error {
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must not be negative")
	}
	if t.Category == "" {
		return fmt.Errorf("transaction must reference a category")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

func (s *TransactionServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, t Transaction) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, t)); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
