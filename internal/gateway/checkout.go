// Package gateway talks to the hosted-checkout payment provider. The
// provider hosts the actual payment page; this client only creates checkout
// sessions and verifies the signatures on server-to-server callbacks.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"servicefinder/internal/config"
)

// Client is a thin REST client for the checkout provider
type Client struct {
	cfg        *config.PaymentConfig
	httpClient *http.Client
}

// NewClient creates a gateway client from the loaded payment configuration
func NewClient(cfg *config.PaymentConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateSession registers a checkout attempt with the gateway and returns
// the URL the customer should be redirected to.
func (c *Client) CreateSession(ctx context.Context, orderRef string, amountCents int64, currency string) (string, error) {
	form := url.Values{}
	form.Set("public_key", c.cfg.PublicKey)
	form.Set("token", c.cfg.Token)
	form.Set("order_ref", orderRef)
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("return_url", c.cfg.SuccessURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("callback_url", c.cfg.CallbackURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Basic Auth: username = private key, password empty
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("gateway create session failed: %s (%d)", string(body), res.StatusCode)
	}

	var sess sessionResponse
	if err := json.Unmarshal(body, &sess); err != nil {
		return "", fmt.Errorf("parse session json failed: %w", err)
	}
	if sess.CheckoutURL == "" {
		return "", fmt.Errorf("gateway session response missing checkout_url")
	}
	return sess.CheckoutURL, nil
}

// Sign computes the callback signature over the fields the gateway signs:
// order_ref|status|amount, keyed with the mode-selected private key.
func (c *Client) Sign(orderRef, status string, amountCents int64) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.PrivateKey))
	fmt.Fprintf(mac, "%s|%s|%d", orderRef, status, amountCents)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a callback signature in constant time. The payload
// is never trusted on its own; a bad signature rejects the whole callback.
func (c *Client) VerifySignature(orderRef, status string, amountCents int64, signature string) bool {
	expected := c.Sign(orderRef, status, amountCents)
	return hmac.Equal([]byte(expected), []byte(signature))
}
