package category

import (
	"context"
	"time"
)

type StubCategoryRepo struct {
	categories []Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{categories: DefaultCategories(time.Now())}
}

func (s *StubCategoryRepo) GetAll(ctx context.Context) ([]Category, error) {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *StubCategoryRepo) SaveAll(ctx context.Context, categories []Category) error {
	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
	return nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.categories = DefaultCategories(time.Now())
}
