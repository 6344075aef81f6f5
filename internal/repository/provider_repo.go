package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servicefinder/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProviderRepository defines operations for provider profiles
type ProviderRepository interface {
	Create(ctx context.Context, provider *model.Provider) error
	FindByID(ctx context.Context, id int64) (*model.Provider, error)
	FindByUserID(ctx context.Context, userID int) (*model.Provider, error)
	FindPublic(ctx context.Context, filters model.ProviderFilters) ([]model.Provider, error)
	FindAllAdmin(ctx context.Context, active *bool) ([]model.Provider, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	MarkPremium(ctx context.Context, id int64) error
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type providerRepository struct {
	db DB
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db DB) ProviderRepository {
	return &providerRepository{db: db}
}

const providerColumns = `id, user_id, business_name, category_id, subcategory_id, city, description, website, phone, premium, rating, review_count, active, created_at, updated_at`

func scanProvider(row pgx.Row) (*model.Provider, error) {
	p := &model.Provider{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.CategoryID, &p.SubcategoryID,
		&p.City, &p.Description, &p.Website, &p.Phone, &p.Premium,
		&p.Rating, &p.ReviewCount, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new provider profile
func (r *providerRepository) Create(ctx context.Context, p *model.Provider) error {
	sql := `INSERT INTO providers (user_id, business_name, category_id, subcategory_id, city, description, website, phone, premium, active, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.UserID, p.BusinessName, p.CategoryID, p.SubcategoryID, p.City,
		p.Description, p.Website, p.Phone, p.Premium, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// FindByID retrieves a provider by its ID
func (r *providerRepository) FindByID(ctx context.Context, id int64) (*model.Provider, error) {
	sql := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	p, err := scanProvider(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find provider by ID: %w", err)
	}
	return p, nil
}

// FindByUserID retrieves the provider profile linked to a user, if any
func (r *providerRepository) FindByUserID(ctx context.Context, userID int) (*model.Provider, error) {
	sql := `SELECT ` + providerColumns + ` FROM providers WHERE user_id = $1`
	p, err := scanProvider(r.db.QueryRow(ctx, sql, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to find provider by user ID: %w", err)
	}
	return p, nil
}

// FindPublic retrieves active providers with optional filters, premium first
func (r *providerRepository) FindPublic(ctx context.Context, filters model.ProviderFilters) ([]model.Provider, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + providerColumns + ` FROM providers WHERE active = TRUE`)
	args := []interface{}{}
	argCount := 1

	if filters.CategoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND category_id = $%d", argCount))
		args = append(args, *filters.CategoryID)
		argCount++
	}
	if filters.SubcategoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND subcategory_id = $%d", argCount))
		args = append(args, *filters.SubcategoryID)
		argCount++
	}
	if filters.City != nil && *filters.City != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND city = $%d", argCount))
		args = append(args, *filters.City)
		argCount++
	}
	if filters.Premium != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND premium = $%d", argCount))
		args = append(args, *filters.Premium)
	}

	queryBuilder.WriteString(" ORDER BY premium DESC, rating DESC, review_count DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query public providers: %w", err)
	}
	defer rows.Close()

	return collectProviders(rows)
}

// FindAllAdmin retrieves providers for moderation, optionally by status
func (r *providerRepository) FindAllAdmin(ctx context.Context, active *bool) ([]model.Provider, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + providerColumns + ` FROM providers`)
	args := []interface{}{}

	if active != nil {
		queryBuilder.WriteString(" WHERE active = $1")
		args = append(args, *active)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers for admin: %w", err)
	}
	defer rows.Close()

	return collectProviders(rows)
}

func collectProviders(rows pgx.Rows) ([]model.Provider, error) {
	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BusinessName, &p.CategoryID, &p.SubcategoryID,
			&p.City, &p.Description, &p.Website, &p.Phone, &p.Premium,
			&p.Rating, &p.ReviewCount, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider rows: %w", err)
	}
	return providers, nil
}

// SetActive toggles a provider's active flag. Returns false when the
// provider does not exist.
func (r *providerRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	sql := `UPDATE providers SET active = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, active, id)
	if err != nil {
		return false, fmt.Errorf("failed to set provider active flag: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// MarkPremium flags a provider as premium and activates it. Called when a
// payment for the registration is confirmed.
func (r *providerRepository) MarkPremium(ctx context.Context, id int64) error {
	sql := `UPDATE providers SET premium = TRUE, active = TRUE, updated_at = NOW() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to mark provider premium: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("provider not found for premium update")
	}
	return nil
}

// GetDashboardStats computes the admin dashboard counters in one pass.
// Inactive is derived as total - active so the counts always reconcile.
func (r *providerRepository) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}
	sql := `
        SELECT
            (SELECT COUNT(*) FROM providers) AS total_providers,
            (SELECT COUNT(*) FROM providers WHERE active) AS active_providers,
            (SELECT COUNT(*) FROM providers WHERE premium) AS premium_providers,
            (SELECT COUNT(*) FROM users) AS total_users,
            (SELECT COUNT(*) FROM categories) AS total_categories,
            (SELECT COUNT(*) FROM payment_transactions WHERE status = 'pending') AS pending_payments`
	err := r.db.QueryRow(ctx, sql).Scan(
		&stats.TotalProviders, &stats.ActiveProviders, &stats.PremiumProviders,
		&stats.TotalUsers, &stats.TotalCategories, &stats.PendingPayments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	stats.InactiveProviders = stats.TotalProviders - stats.ActiveProviders
	return stats, nil
}
