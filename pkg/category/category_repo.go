package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

type CategoryRepo interface {
	// GetAll loads the full category collection. An empty store is seeded
	// with the default catalog; an unreadable blob degrades to the defaults
	// instead of failing.
	GetAll(ctx context.Context) ([]Category, error)
	SaveAll(ctx context.Context, categories []Category) error
}

type CategoryRepoImpl struct {
	store storage.Store
}

func NewCategoryRepo(store storage.Store) *CategoryRepoImpl {
	return &CategoryRepoImpl{store: store}
}

func (r *CategoryRepoImpl) GetAll(ctx context.Context) ([]Category, error) {
	blob, err := r.store.Get(ctx, storage.KeyCategories)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			defaults := DefaultCategories(time.Now())
			if err := r.SaveAll(ctx, defaults); err != nil {
				return nil, err
			}
			log.Info("seeded default category catalog")
			return defaults, nil
		}
		return nil, fmt.Errorf("could not load categories: %w", err)
	}

	var categories []Category
	if err := json.Unmarshal(blob, &categories); err != nil {
		log.Errorf("stored categories are unreadable, falling back to defaults: %v", err)
		return DefaultCategories(time.Now()), nil
	}
	return categories, nil
}

func (r *CategoryRepoImpl) SaveAll(ctx context.Context, categories []Category) error {
	blob, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("could not encode categories: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyCategories, blob); err != nil {
		return fmt.Errorf("could not save categories: %w", err)
	}
	return nil
}
