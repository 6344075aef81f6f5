package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"servicefinder/internal/config"
	"servicefinder/internal/model"
	"servicefinder/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrInvalidSignature    = errors.New("invalid callback signature")
	ErrAlreadyPremium      = errors.New("provider is already premium")
)

// CheckoutGateway is the slice of the gateway client the payment service
// depends on.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, orderRef string, amountCents int64, currency string) (string, error)
	VerifySignature(orderRef, status string, amountCents int64, signature string) bool
}

// PaymentService starts checkouts and reconciles gateway callbacks
type PaymentService interface {
	StartCheckout(ctx context.Context, userID int) (*model.CheckoutResponse, error)
	HandleCallback(ctx context.Context, payload model.CallbackPayload) (*model.CallbackAck, error)
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	providerRepo repository.ProviderRepository
	gateway      CheckoutGateway
	cfg          *config.PaymentConfig
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, providerRepo repository.ProviderRepository, gw CheckoutGateway, cfg *config.PaymentConfig) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		providerRepo: providerRepo,
		gateway:      gw,
		cfg:          cfg,
	}
}

// StartCheckout opens a pending transaction for the caller's provider
// profile and returns the hosted checkout URL. An open pending transaction
// is reused so refreshing the payment page does not pile up rows.
func (s *paymentService) StartCheckout(ctx context.Context, userID int) (*model.CheckoutResponse, error) {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find provider for checkout: %w", err)
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if provider.Premium {
		return nil, ErrAlreadyPremium
	}

	txn, err := s.paymentRepo.FindPendingByProvider(ctx, provider.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending transactions: %w", err)
	}
	if txn == nil {
		txn = &model.PaymentTransaction{
			OrderRef:    uuid.New().String(),
			ProviderID:  provider.ID,
			AmountCents: s.cfg.PremiumFee,
			Currency:    s.cfg.Currency,
			Status:      model.PaymentStatusPending,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.paymentRepo.Create(ctx, txn); err != nil {
			return nil, fmt.Errorf("failed to create payment transaction: %w", err)
		}
	}

	checkoutURL, err := s.gateway.CreateSession(ctx, txn.OrderRef, txn.AmountCents, txn.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &model.CheckoutResponse{OrderRef: txn.OrderRef, CheckoutURL: checkoutURL}, nil
}

// HandleCallback reconciles a gateway notification. The signature is
// verified before anything else; the status transition is conditional on
// the row still being pending, so redelivery of the same callback settles
// into a no-op returning the same acknowledgement.
func (s *paymentService) HandleCallback(ctx context.Context, payload model.CallbackPayload) (*model.CallbackAck, error) {
	if !s.gateway.VerifySignature(payload.OrderRef, payload.Status, payload.AmountCents, payload.Signature) {
		return nil, ErrInvalidSignature
	}

	txn, err := s.paymentRepo.FindByOrderRef(ctx, payload.OrderRef)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}

	newStatus := model.PaymentStatusCancelled
	if payload.Status == "paid" {
		newStatus = model.PaymentStatusConfirmed
	}

	transitioned, err := s.paymentRepo.TransitionIfPending(ctx, payload.OrderRef, newStatus, payload.GatewayRef)
	if err != nil {
		return nil, fmt.Errorf("failed to transition transaction: %w", err)
	}

	if transitioned && newStatus == model.PaymentStatusConfirmed {
		if err := s.providerRepo.MarkPremium(ctx, txn.ProviderID); err != nil {
			return nil, fmt.Errorf("transaction confirmed but provider update failed: %w", err)
		}
		log.Printf("Payment %s confirmed, provider %d upgraded to premium", payload.OrderRef, txn.ProviderID)
	}
	if !transitioned {
		// Duplicate delivery: ack with the already-settled status so the
		// gateway stops retrying.
		newStatus = txn.Status
	}

	return &model.CallbackAck{OrderRef: payload.OrderRef, Status: newStatus}, nil
}
