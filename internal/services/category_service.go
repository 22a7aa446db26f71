package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// CategoryService manages product categories.
type CategoryService struct {
	store repositories.Store
}

func NewCategoryService(store repositories.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().GetAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.store.Categories().GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	category := &models.Category{Name: name}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category. in.ID, when set, must match id.
func (s *CategoryService) Update(ctx context.Context, id string, in models.Category) (*models.Category, error) {
	if in.ID != "" && in.ID != id {
		return nil, conflictError("category id %s does not match path id %s", in.ID, id)
	}
	if err := validateCategoryName(in.Name); err != nil {
		return nil, err
	}
	category := &models.Category{ID: id, Name: in.Name}
	if err := s.store.Categories().Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that owns no products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Categories().GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.store.Products().CountByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictError("category %s still has %d products", id, n)
	}
	return s.store.Categories().Delete(ctx, id)
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError("categoryName is required")
	}
	if utf8.RuneCountInString(name) > 50 {
		return validationError("categoryName must be at most 50 characters")
	}
	return nil
}
