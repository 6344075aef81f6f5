package repository

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/internal/model"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository defines operations for taxonomy data
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error)
}

type categoryRepository struct {
	db DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// FindAll retrieves all categories with their active provider counts
func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	sql := `SELECT c.id, c.name, c.icon, COUNT(p.id) FILTER (WHERE p.active) AS provider_count
            FROM categories c
            LEFT JOIN providers p ON p.category_id = c.id
            GROUP BY c.id, c.name, c.icon
            ORDER BY c.name`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.ProviderCount); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// FindByID retrieves a single category
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	c := &model.Category{}
	sql := `SELECT id, name, icon FROM categories WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&c.ID, &c.Name, &c.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return c, nil
}

// FindSubcategories retrieves the subcategories belonging to a category.
// The category_id predicate is what guarantees referential containment.
func (r *categoryRepository) FindSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	sql := `SELECT id, category_id, name FROM subcategories WHERE category_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, sql, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []model.Subcategory
	for rows.Next() {
		var s model.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory row: %w", err)
		}
		subcategories = append(subcategories, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategory rows: %w", err)
	}
	return subcategories, nil
}
