package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value has ever been stored
// under the requested key.
var ErrKeyNotFound = errors.New("key not found")

// Store is a synchronous key-value store holding one JSON blob per
// collection. Writes are atomic per key; there is no cross-key transaction
// because every collection lives under a single key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Well-known collection keys. The names are part of the export/import
// contract and must not change.
const (
	KeyBudgets      = "budgets"
	KeyCategories   = "categories"
	KeyTransactions = "transactions"
)
