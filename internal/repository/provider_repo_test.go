package repository

import (
	"context"
	"testing"

	"servicefinder/internal/model"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats_InactiveDerivedFromTotals(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewProviderRepository(mockPool)

	mockPool.ExpectQuery(`SELECT`).
		WillReturnRows(pgxmock.NewRows([]string{"total_providers", "active_providers", "premium_providers", "total_users", "total_categories", "pending_payments"}).
			AddRow(int64(10), int64(7), int64(4), int64(25), int64(6), int64(2)))

	stats, err := repo.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.InactiveProviders)
	assert.Equal(t, stats.TotalProviders, stats.ActiveProviders+stats.InactiveProviders)
	assert.LessOrEqual(t, stats.PremiumProviders, stats.TotalProviders)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetActive_ReportsMissingProvider(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewProviderRepository(mockPool)

	mockPool.ExpectExec(`UPDATE providers SET active = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(true, int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	found, err := repo.SetActive(context.Background(), 404, true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindPublic_AppliesFilters(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewProviderRepository(mockPool)

	categoryID := int64(2)
	city := "Colombo"

	mockPool.ExpectQuery(`SELECT .+ FROM providers WHERE active = TRUE AND category_id = \$1 AND city = \$2 ORDER BY premium DESC`).
		WithArgs(categoryID, city).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "business_name", "category_id", "subcategory_id", "city",
			"description", "website", "phone", "premium", "rating", "review_count",
			"active", "created_at", "updated_at",
		}))

	_, err = repo.FindPublic(context.Background(), model.ProviderFilters{CategoryID: &categoryID, City: &city})
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
