package service

import (
	"context"

	"servicefinder/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id int, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) Create(ctx context.Context, provider *model.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *mockProviderRepo) FindByID(ctx context.Context, id int64) (*model.Provider, error) {
	args := m.Called(ctx, id)
	provider, _ := args.Get(0).(*model.Provider)
	return provider, args.Error(1)
}

func (m *mockProviderRepo) FindByUserID(ctx context.Context, userID int) (*model.Provider, error) {
	args := m.Called(ctx, userID)
	provider, _ := args.Get(0).(*model.Provider)
	return provider, args.Error(1)
}

func (m *mockProviderRepo) FindPublic(ctx context.Context, filters model.ProviderFilters) ([]model.Provider, error) {
	args := m.Called(ctx, filters)
	providers, _ := args.Get(0).([]model.Provider)
	return providers, args.Error(1)
}

func (m *mockProviderRepo) FindAllAdmin(ctx context.Context, active *bool) ([]model.Provider, error) {
	args := m.Called(ctx, active)
	providers, _ := args.Get(0).([]model.Provider)
	return providers, args.Error(1)
}

func (m *mockProviderRepo) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	args := m.Called(ctx, id, active)
	return args.Bool(0), args.Error(1)
}

func (m *mockProviderRepo) MarkPremium(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProviderRepo) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.DashboardStats)
	return stats, args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*model.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepo) FindSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	subcategories, _ := args.Get(0).([]model.Subcategory)
	return subcategories, args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *mockPaymentRepo) FindByOrderRef(ctx context.Context, orderRef string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, orderRef)
	txn, _ := args.Get(0).(*model.PaymentTransaction)
	return txn, args.Error(1)
}

func (m *mockPaymentRepo) FindPendingByProvider(ctx context.Context, providerID int64) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, providerID)
	txn, _ := args.Get(0).(*model.PaymentTransaction)
	return txn, args.Error(1)
}

func (m *mockPaymentRepo) TransitionIfPending(ctx context.Context, orderRef, status, gatewayRef string) (bool, error) {
	args := m.Called(ctx, orderRef, status, gatewayRef)
	return args.Bool(0), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSession(ctx context.Context, orderRef string, amountCents int64, currency string) (string, error) {
	args := m.Called(ctx, orderRef, amountCents, currency)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) VerifySignature(orderRef, status string, amountCents int64, signature string) bool {
	args := m.Called(orderRef, status, amountCents, signature)
	return args.Bool(0)
}
