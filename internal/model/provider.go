package model

import "time"

// Provider is a service professional profile, one-to-one with a user
type Provider struct {
	ID            int64     `json:"id"`
	UserID        int       `json:"user_id"`
	BusinessName  string    `json:"business_name"`
	CategoryID    int64     `json:"category_id"`
	SubcategoryID *int64    `json:"subcategory_id,omitempty"`
	City          string    `json:"city"`
	Description   *string   `json:"description,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Phone         string    `json:"phone"`
	Premium       bool      `json:"premium"`
	Rating        float64   `json:"rating"`
	ReviewCount   int64     `json:"review_count"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateProviderRequest is used when a logged-in user registers as a provider
type CreateProviderRequest struct {
	BusinessName  string  `json:"business_name" binding:"required"`
	CategoryID    int64   `json:"category_id" binding:"required"`
	SubcategoryID *int64  `json:"subcategory_id"`
	City          string  `json:"city" binding:"required"`
	Description   *string `json:"description"`
	Website       *string `json:"website"`
	Phone         string  `json:"phone" binding:"required"`
}

// ProviderFilters contains filter parameters for public provider listings
type ProviderFilters struct {
	CategoryID    *int64
	SubcategoryID *int64
	City          *string
	Premium       *bool
}

// DashboardStats holds the admin dashboard counters.
// InactiveProviders is always TotalProviders - ActiveProviders.
type DashboardStats struct {
	TotalProviders    int64 `json:"total_providers"`
	ActiveProviders   int64 `json:"active_providers"`
	InactiveProviders int64 `json:"inactive_providers"`
	PremiumProviders  int64 `json:"premium_providers"`
	TotalUsers        int64 `json:"total_users"`
	TotalCategories   int64 `json:"total_categories"`
	PendingPayments   int64 `json:"pending_payments"`
}
