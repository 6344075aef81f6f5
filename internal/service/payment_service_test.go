package service

import (
	"context"
	"testing"

	"servicefinder/internal/config"
	"servicefinder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPaymentConfig() *config.PaymentConfig {
	return &config.PaymentConfig{
		Mode:       config.PaymentModeTest,
		PremiumFee: 5000,
		Currency:   "USD",
	}
}

func TestStartCheckout_CreatesPendingTransaction(t *testing.T) {
	provider := &model.Provider{ID: 11, UserID: 3, Premium: false}

	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)

	providerRepo.On("FindByUserID", mock.Anything, 3).Return(provider, nil)
	paymentRepo.On("FindPendingByProvider", mock.Anything, int64(11)).Return(nil, nil)
	paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.PaymentTransaction) bool {
		return txn.ProviderID == 11 && txn.Status == model.PaymentStatusPending &&
			txn.AmountCents == 5000 && txn.OrderRef != ""
	})).Return(nil)
	gw.On("CreateSession", mock.Anything, mock.Anything, int64(5000), "USD").
		Return("https://checkout.example.com/s/abc", nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	checkout, err := svc.StartCheckout(context.Background(), 3)

	require.NoError(t, err)
	assert.NotEmpty(t, checkout.OrderRef)
	assert.Equal(t, "https://checkout.example.com/s/abc", checkout.CheckoutURL)
	paymentRepo.AssertExpectations(t)
}

func TestStartCheckout_ReusesOpenTransaction(t *testing.T) {
	provider := &model.Provider{ID: 11, UserID: 3}
	open := &model.PaymentTransaction{OrderRef: "existing-ref", ProviderID: 11, AmountCents: 5000, Currency: "USD", Status: model.PaymentStatusPending}

	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)

	providerRepo.On("FindByUserID", mock.Anything, 3).Return(provider, nil)
	paymentRepo.On("FindPendingByProvider", mock.Anything, int64(11)).Return(open, nil)
	gw.On("CreateSession", mock.Anything, "existing-ref", int64(5000), "USD").
		Return("https://checkout.example.com/s/xyz", nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	checkout, err := svc.StartCheckout(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "existing-ref", checkout.OrderRef)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStartCheckout_RequiresProviderProfile(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	providerRepo.On("FindByUserID", mock.Anything, 5).Return(nil, nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	_, err := svc.StartCheckout(context.Background(), 5)

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestStartCheckout_AlreadyPremium(t *testing.T) {
	provider := &model.Provider{ID: 11, UserID: 3, Premium: true}

	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	providerRepo.On("FindByUserID", mock.Anything, 3).Return(provider, nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	_, err := svc.StartCheckout(context.Background(), 3)

	assert.ErrorIs(t, err, ErrAlreadyPremium)
}

func TestHandleCallback_RejectsInvalidSignature(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	gw.On("VerifySignature", "ref-1", "paid", int64(5000), "bad-sig").Return(false)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	_, err := svc.HandleCallback(context.Background(), model.CallbackPayload{
		OrderRef: "ref-1", Status: "paid", AmountCents: 5000, Signature: "bad-sig",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	paymentRepo.AssertNotCalled(t, "FindByOrderRef", mock.Anything, mock.Anything)
}

func TestHandleCallback_UnknownOrderRef(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	gw.On("VerifySignature", "missing", "paid", int64(5000), "sig").Return(true)
	paymentRepo.On("FindByOrderRef", mock.Anything, "missing").Return(nil, nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	_, err := svc.HandleCallback(context.Background(), model.CallbackPayload{
		OrderRef: "missing", Status: "paid", AmountCents: 5000, Signature: "sig",
	})

	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestHandleCallback_ConfirmUpgradesProviderExactlyOnce(t *testing.T) {
	payload := model.CallbackPayload{
		OrderRef: "ref-1", Status: "paid", AmountCents: 5000, GatewayRef: "gw-99", Signature: "sig",
	}
	pending := &model.PaymentTransaction{ID: 1, OrderRef: "ref-1", ProviderID: 11, Status: model.PaymentStatusPending}
	settled := &model.PaymentTransaction{ID: 1, OrderRef: "ref-1", ProviderID: 11, Status: model.PaymentStatusConfirmed}

	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	gw.On("VerifySignature", "ref-1", "paid", int64(5000), "sig").Return(true)
	paymentRepo.On("FindByOrderRef", mock.Anything, "ref-1").Return(pending, nil).Once()
	paymentRepo.On("FindByOrderRef", mock.Anything, "ref-1").Return(settled, nil)
	paymentRepo.On("TransitionIfPending", mock.Anything, "ref-1", model.PaymentStatusConfirmed, "gw-99").Return(true, nil).Once()
	paymentRepo.On("TransitionIfPending", mock.Anything, "ref-1", model.PaymentStatusConfirmed, "gw-99").Return(false, nil)
	providerRepo.On("MarkPremium", mock.Anything, int64(11)).Return(nil).Once()

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())

	firstAck, err := svc.HandleCallback(context.Background(), payload)
	require.NoError(t, err)

	// Gateway redelivers the identical payload.
	secondAck, err := svc.HandleCallback(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, firstAck, secondAck)
	assert.Equal(t, model.PaymentStatusConfirmed, secondAck.Status)
	providerRepo.AssertNumberOfCalls(t, "MarkPremium", 1)
}

func TestHandleCallback_CancelledDoesNotUpgradeProvider(t *testing.T) {
	pending := &model.PaymentTransaction{ID: 2, OrderRef: "ref-2", ProviderID: 12, Status: model.PaymentStatusPending}

	paymentRepo := new(mockPaymentRepo)
	providerRepo := new(mockProviderRepo)
	gw := new(mockGateway)
	gw.On("VerifySignature", "ref-2", "cancelled", int64(5000), "sig").Return(true)
	paymentRepo.On("FindByOrderRef", mock.Anything, "ref-2").Return(pending, nil)
	paymentRepo.On("TransitionIfPending", mock.Anything, "ref-2", model.PaymentStatusCancelled, "").Return(true, nil)

	svc := NewPaymentService(paymentRepo, providerRepo, gw, testPaymentConfig())
	ack, err := svc.HandleCallback(context.Background(), model.CallbackPayload{
		OrderRef: "ref-2", Status: "cancelled", AmountCents: 5000, Signature: "sig",
	})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCancelled, ack.Status)
	providerRepo.AssertNotCalled(t, "MarkPremium", mock.Anything, mock.Anything)
}
