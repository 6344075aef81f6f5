package model

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusCancelled = "cancelled"
)

// PaymentTransaction tracks one hosted-checkout attempt for a provider
// registration. It transitions pending -> confirmed/cancelled exactly once,
// driven by the gateway callback.
type PaymentTransaction struct {
	ID          int64     `json:"id"`
	OrderRef    string    `json:"order_ref"`
	ProviderID  int64     `json:"provider_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	GatewayRef  *string   `json:"gateway_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CheckoutResponse is returned to the client so it can redirect the user
// to the gateway-hosted checkout page.
type CheckoutResponse struct {
	OrderRef    string `json:"order_ref"`
	CheckoutURL string `json:"checkout_url"`
}

// CallbackPayload is the server-to-server notification the gateway posts
// after a checkout attempt completes.
type CallbackPayload struct {
	OrderRef    string `json:"order_ref" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=paid cancelled"`
	AmountCents int64  `json:"amount_cents" binding:"gt=0"`
	GatewayRef  string `json:"gateway_ref"`
	Signature   string `json:"signature" binding:"required"`
}

// CallbackAck is the acknowledgement body; duplicate deliveries of the
// same payload receive an identical ack.
type CallbackAck struct {
	OrderRef string `json:"order_ref"`
	Status   string `json:"status"`
}
