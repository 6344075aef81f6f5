package service

import (
	"context"
	"fmt"

	"servicefinder/internal/model"
	"servicefinder/internal/repository"
)

// AdminService backs the moderation console and dashboard
type AdminService interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
	ListProviders(ctx context.Context, active *bool) ([]model.Provider, error)
	SetProviderActive(ctx context.Context, id int64, active bool) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

type adminService struct {
	providerRepo repository.ProviderRepository
	userRepo     repository.UserRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(providerRepo repository.ProviderRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{providerRepo: providerRepo, userRepo: userRepo}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.providerRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *adminService) ListProviders(ctx context.Context, active *bool) ([]model.Provider, error) {
	providers, err := s.providerRepo.FindAllAdmin(ctx, active)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers for admin: %w", err)
	}
	return providers, nil
}

// SetProviderActive toggles moderation status. Repeating the same toggle is
// a no-op, not an error.
func (s *adminService) SetProviderActive(ctx context.Context, id int64, active bool) error {
	found, err := s.providerRepo.SetActive(ctx, id, active)
	if err != nil {
		return fmt.Errorf("failed to set provider status: %w", err)
	}
	if !found {
		return ErrProviderNotFound
	}
	return nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
