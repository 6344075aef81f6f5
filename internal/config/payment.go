package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	PaymentModeTest       = "test"
	PaymentModeProduction = "production"
)

// PaymentConfig holds the hosted-checkout gateway settings. The mode flag
// selects between the test and production credential sets.
type PaymentConfig struct {
	Mode        string
	PublicKey   string
	PrivateKey  string
	Token       string
	BaseURL     string // gateway API base, e.g. https://checkout.example.com
	SuccessURL  string
	CancelURL   string
	CallbackURL string
	PremiumFee  int64 // in cents
	Currency    string
}

// LoadPaymentConfig reads gateway credentials from environment variables.
// PAYMENT_MODE=test selects the PAYMENT_TEST_* set, production the
// PAYMENT_LIVE_* set.
func LoadPaymentConfig() (*PaymentConfig, error) {
	mode := getEnv("PAYMENT_MODE", PaymentModeTest)

	cfg := &PaymentConfig{
		Mode:        mode,
		BaseURL:     getEnv("PAYMENT_BASE_URL", "https://checkout.example.com"),
		SuccessURL:  getEnv("PAYMENT_SUCCESS_URL", "/api/payment/success"),
		CancelURL:   getEnv("PAYMENT_CANCEL_URL", "/api/payment/cancel"),
		CallbackURL: getEnv("PAYMENT_CALLBACK_URL", "/api/payment/callback"),
		Currency:    getEnv("PAYMENT_CURRENCY", "USD"),
	}

	switch mode {
	case PaymentModeTest:
		cfg.PublicKey = os.Getenv("PAYMENT_TEST_PUBLIC_KEY")
		cfg.PrivateKey = os.Getenv("PAYMENT_TEST_PRIVATE_KEY")
		cfg.Token = os.Getenv("PAYMENT_TEST_TOKEN")
	case PaymentModeProduction:
		cfg.PublicKey = os.Getenv("PAYMENT_LIVE_PUBLIC_KEY")
		cfg.PrivateKey = os.Getenv("PAYMENT_LIVE_PRIVATE_KEY")
		cfg.Token = os.Getenv("PAYMENT_LIVE_TOKEN")
	default:
		return nil, fmt.Errorf("invalid PAYMENT_MODE %q, expected %q or %q", mode, PaymentModeTest, PaymentModeProduction)
	}

	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("payment gateway keys not set for mode %q", mode)
	}

	feeStr := getEnv("PAYMENT_PREMIUM_FEE_CENTS", "5000")
	fee, err := strconv.ParseInt(feeStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_PREMIUM_FEE_CENTS: %w", err)
	}
	cfg.PremiumFee = fee

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
