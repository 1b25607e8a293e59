package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

type TransactionRepo interface {
	// GetAll loads the full ledger. A missing or unreadable blob degrades to
	// an empty ledger instead of failing.
	GetAll(ctx context.Context) ([]Transaction, error)
	SaveAll(ctx context.Context, transactions []Transaction) error
}

type TransactionRepoImpl struct {
	store storage.Store
}

func NewTransactionRepo(store storage.Store) *TransactionRepoImpl {
	return &TransactionRepoImpl{store: store}
}

func (r *TransactionRepoImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	blob, err := r.store.Get(ctx, storage.KeyTransactions)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []Transaction{}, nil
		}
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}

	var transactions []Transaction
	if err := json.Unmarshal(blob, &transactions); err != nil {
		log.Errorf("stored transactions are unreadable, starting from an empty ledger: %v", err)
		return []Transaction{}, nil
	}
	return transactions, nil
}

func (r *TransactionRepoImpl) SaveAll(ctx context.Context, transactions []Transaction) error {
	blob, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("could not encode transactions: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyTransactions, blob); err != nil {
		return fmt.Errorf("could not save transactions: %w", err)
	}
	return nil
}
