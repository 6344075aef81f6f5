package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"servicefinder/internal/model"
	"servicefinder/internal/repository"
)

var (
	ErrProviderNotFound      = errors.New("provider not found")
	ErrProviderAlreadyExists = errors.New("user already has a provider profile")
)

// ProviderService covers public browsing and provider registration
type ProviderService interface {
	RegisterProvider(ctx context.Context, userID int, req model.CreateProviderRequest) (*model.Provider, error)
	ListProviders(ctx context.Context, filters model.ProviderFilters) ([]model.Provider, error)
	GetProvider(ctx context.Context, id int64) (*model.Provider, error)
}

type providerService struct {
	providerRepo repository.ProviderRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerRepo repository.ProviderRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) ProviderService {
	return &providerService{
		providerRepo: providerRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// RegisterProvider creates the provider profile for a user. The profile
// starts inactive; payment confirmation or an admin toggle activates it.
func (s *providerService) RegisterProvider(ctx context.Context, userID int, req model.CreateProviderRequest) (*model.Provider, error) {
	existing, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing provider: %w", err)
	}
	if existing != nil {
		return nil, ErrProviderAlreadyExists
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	provider := &model.Provider{
		UserID:        userID,
		BusinessName:  req.BusinessName,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		City:          req.City,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Premium:       false,
		Active:        false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to create provider in repo: %w", err)
	}

	// Flip the account to the provider role; the profile is already saved,
	// so a failure here is logged rather than surfaced.
	if err := s.userRepo.UpdateRole(ctx, userID, model.RoleProvider); err != nil {
		log.Printf("WARN: provider %d created but role update failed for user %d: %v", provider.ID, userID, err)
	}

	return provider, nil
}

func (s *providerService) ListProviders(ctx context.Context, filters model.ProviderFilters) ([]model.Provider, error) {
	providers, err := s.providerRepo.FindPublic(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

// GetProvider returns a single provider; inactive profiles are hidden from
// the public surface.
func (s *providerService) GetProvider(ctx context.Context, id int64) (*model.Provider, error) {
	provider, err := s.providerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find provider: %w", err)
	}
	if provider == nil || !provider.Active {
		return nil, ErrProviderNotFound
	}
	return provider, nil
}
