package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// GetAll loads the full budget collection. A missing or unreadable blob
	// degrades to an empty collection instead of failing.
	GetAll(ctx context.Context) ([]Budget, error)
	SaveAll(ctx context.Context, budgets []Budget) error
}

type BudgetRepoImpl struct {
	store storage.Store
}

func NewBudgetRepo(store storage.Store) *BudgetRepoImpl {
	return &BudgetRepoImpl{store: store}
}

func (r *BudgetRepoImpl) GetAll(ctx context.Context) ([]Budget, error) {
	blob, err := r.store.Get(ctx, storage.KeyBudgets)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []Budget{}, nil
		}
		return nil, fmt.Errorf("could not load budgets: %w", err)
	}

	var budgets []Budget
	if err := json.Unmarshal(blob, &budgets); err != nil {
		log.Errorf("stored budgets are unreadable, starting from an empty collection: %v", err)
		return []Budget{}, nil
	}
	return budgets, nil
}

func (r *BudgetRepoImpl) SaveAll(ctx context.Context, budgets []Budget) error {
	blob, err := json.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("could not encode budgets: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyBudgets, blob); err != nil {
		return fmt.Errorf("could not save budgets: %w", err)
	}
	return nil
}
