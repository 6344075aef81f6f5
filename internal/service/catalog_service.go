package service

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/internal/model"
	"servicefinder/internal/repository"
)

var ErrCategoryNotFound = errors.New("category not found")

// CatalogService exposes the category/subcategory taxonomy
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	subcategories, err := s.categoryRepo.FindSubcategories(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return subcategories, nil
}
