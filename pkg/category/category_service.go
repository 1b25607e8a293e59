package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CategoryService interface {
	List(ctx context.Context, typeFilter CategoryType) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Category, error)
	IsNameTaken(ctx context.Context, name string, excludeID string) (bool, error)
	ResetToDefaults(ctx context.Context) ([]Category, error)
}

type CategoryServiceImpl struct {
	repo  CategoryRepo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewCategoryService(repo CategoryRepo, bus *event_bus.EventBus) *CategoryServiceImpl {
	return &CategoryServiceImpl{
		repo:  repo,
		bus:   bus,
		clock: &utils.SystemClock{},
	}
}

func (s *CategoryServiceImpl) List(ctx context.Context, typeFilter CategoryType) ([]Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if typeFilter == "" {
		return categories, nil
	}

	filtered := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == typeFilter {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id string) (Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	if !category.Type.IsValid() {
		return Category{}, fmt.Errorf("invalid category type %q", category.Type)
	}
	if strings.TrimSpace(category.Name) == "" {
		return Category{}, fmt.Errorf("category name must not be empty")
	}

	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return Category{}, err
	}

	category.ID = uuid.NewString()
	category.IsDefault = false
	category.CreatedAt = s.clock.Now()
	category.UpdatedAt = category.CreatedAt
	if category.Color == "" {
		category.Color = "#607D8B"
	}
	if category.Icon == "" {
		category.Icon = "📋"
	}

	categories = append(categories, category)
	if err := s.repo.SaveAll(ctx, categories); err != nil {
		return Category{}, err
	}

	s.publish(ctx, event_bus.CategoryCreated, category)
	return category, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, category Category) (Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return Category{}, err
	}

	for i, existing := range categories {
		if existing.ID != category.ID {
			continue
		}

		updated := existing
		updated.Name = category.Name
		updated.Color = category.Color
		updated.Icon = category.Icon
		updated.Description = category.Description
		if category.Type.IsValid() {
			updated.Type = category.Type
		}
		updated.UpdatedAt = s.clock.Now()

		categories[i] = updated
		if err := s.repo.SaveAll(ctx, categories); err != nil {
			return Category{}, err
		}
		s.publish(ctx, event_bus.CategoryUpdated, updated)
		return updated, nil
	}

	return Category{}, ErrCategoryNotFound
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id string) error {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range categories {
		if existing.ID != id {
			continue
		}
		if existing.IsDefault {
			return ErrProtectedCategory
		}

		categories = append(categories[:i], categories[i+1:]...)
		if err := s.repo.SaveAll(ctx, categories); err != nil {
			return err
		}
		s.publish(ctx, event_bus.CategoryDeleted, existing)
		return nil
	}

	return ErrCategoryNotFound
}

func (s *CategoryServiceImpl) Search(ctx context.Context, query string) ([]Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return categories, nil
	}

	needle := strings.ToLower(query)
	matches := make([]Category, 0, len(categories))
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (s *CategoryServiceImpl) IsNameTaken(ctx context.Context, name string, excludeID string) (bool, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *CategoryServiceImpl) ResetToDefaults(ctx context.Context) ([]Category, error) {
	defaults := DefaultCategories(s.clock.Now())
	if err := s.repo.SaveAll(ctx, defaults); err != nil {
		return nil, err
	}
	log.Info("category registry reset to defaults")
	return defaults, nil
}

func (s *CategoryServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, c Category) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, c)); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
