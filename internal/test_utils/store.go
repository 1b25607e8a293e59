package test_utils

import (
	"testing"

	"github.com/fintrack/fintrack/internal/storage"
)

// NewInMemoryStore creates an in-memory data store with migrations applied.
// Each store is completely isolated from others.
func NewInMemoryStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
