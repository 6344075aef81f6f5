package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"servicefinder/internal/model"
	"servicefinder/internal/repository"
	"servicefinder/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("a user with this email or phone already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, identifier, password string) (*model.User, *model.Provider, string, error)
	GetProfile(ctx context.Context, userID int) (*model.User, *model.Provider, error)
}

type authService struct {
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	jwtUtil      *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, providerRepo repository.ProviderRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		jwtUtil:      jwtUtil,
	}
}

// Register creates a new customer account
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	// Emails are stored lowercased; normalize before the duplicate check so
	// a case-variant of an existing address cannot slip past it.
	email := strings.ToLower(req.Email)

	existingByEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}
	existingByPhone, err := s.userRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing phone: %w", err)
	}
	if existingByEmail != nil || existingByPhone != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleCustomer

	// Check for initial admin setup via environment variable
	initialAdminPhone := os.Getenv("INITIAL_ADMIN_PHONE")
	if initialAdminPhone != "" && req.Phone == initialAdminPhone {
		userRole = model.RoleAdmin
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_PHONE.", req.Phone)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         userRole,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user by email or phone and returns a JWT token.
// Every failure collapses into ErrInvalidCredentials so the response never
// reveals whether the identifier exists.
func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, *model.Provider, string, error) {
	// Lowercase so mixed-case email logins match the stored form; phone
	// identifiers are unaffected.
	user, err := s.userRepo.FindByIdentifier(ctx, strings.ToLower(identifier))
	if err != nil {
		return nil, nil, "", fmt.Errorf("error finding user by identifier: %w", err)
	}
	if user == nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	provider, err := s.providerRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load provider profile: %w", err)
	}

	return user, provider, token, nil
}

// GetProfile returns the authenticated user's record and provider profile
func (s *authService) GetProfile(ctx context.Context, userID int) (*model.User, *model.Provider, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load provider profile: %w", err)
	}
	return user, provider, nil
}
