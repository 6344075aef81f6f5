package repository

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/internal/model"

	"github.com/jackc/pgx/v5"
)

// PaymentRepository defines operations for payment transactions
type PaymentRepository interface {
	Create(ctx context.Context, txn *model.PaymentTransaction) error
	FindByOrderRef(ctx context.Context, orderRef string) (*model.PaymentTransaction, error)
	FindPendingByProvider(ctx context.Context, providerID int64) (*model.PaymentTransaction, error)
	// TransitionIfPending moves a pending transaction to the given final
	// status. Returns false when the transaction was already settled, which
	// is how duplicate callback deliveries become no-ops.
	TransitionIfPending(ctx context.Context, orderRef, status, gatewayRef string) (bool, error)
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, order_ref, provider_id, amount_cents, currency, status, gateway_ref, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.PaymentTransaction, error) {
	t := &model.PaymentTransaction{}
	err := row.Scan(&t.ID, &t.OrderRef, &t.ProviderID, &t.AmountCents, &t.Currency, &t.Status, &t.GatewayRef, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a new pending transaction
func (r *paymentRepository) Create(ctx context.Context, t *model.PaymentTransaction) error {
	sql := `INSERT INTO payment_transactions (order_ref, provider_id, amount_cents, currency, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, t.OrderRef, t.ProviderID, t.AmountCents, t.Currency, t.Status, t.CreatedAt, t.UpdatedAt).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

// FindByOrderRef retrieves a transaction by its order reference
func (r *paymentRepository) FindByOrderRef(ctx context.Context, orderRef string) (*model.PaymentTransaction, error) {
	sql := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE order_ref = $1`
	t, err := scanPayment(r.db.QueryRow(ctx, sql, orderRef))
	if err != nil {
		return nil, fmt.Errorf("failed to find payment transaction by order ref: %w", err)
	}
	return t, nil
}

// FindPendingByProvider retrieves an open transaction for a provider, if any
func (r *paymentRepository) FindPendingByProvider(ctx context.Context, providerID int64) (*model.PaymentTransaction, error) {
	sql := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE provider_id = $1 AND status = 'pending' ORDER BY created_at DESC LIMIT 1`
	t, err := scanPayment(r.db.QueryRow(ctx, sql, providerID))
	if err != nil {
		return nil, fmt.Errorf("failed to find pending payment transaction: %w", err)
	}
	return t, nil
}

// TransitionIfPending applies the status update only when the row is still
// pending, so the transition happens at most once.
func (r *paymentRepository) TransitionIfPending(ctx context.Context, orderRef, status, gatewayRef string) (bool, error) {
	sql := `UPDATE payment_transactions
            SET status = $2, gateway_ref = $3, updated_at = NOW()
            WHERE order_ref = $1 AND status = 'pending'`
	cmdTag, err := r.db.Exec(ctx, sql, orderRef, status, gatewayRef)
	if err != nil {
		return false, fmt.Errorf("failed to transition payment transaction: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
