package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RazorpayGateway talks to the Razorpay Orders API and verifies the
// signatures Razorpay produces for checkouts and webhooks
type RazorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	client        *http.Client
	logger        *zap.Logger
}

// NewRazorpayGateway creates a gateway client
func NewRazorpayGateway(keyID, keySecret, webhookSecret, baseURL string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder registers an order with Razorpay. amountMinor is in paise.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read razorpay response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Error("razorpay order create rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("razorpay order create: status %d", resp.StatusCode)
	}

	var out createOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode razorpay response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("razorpay response missing order id")
	}
	return out.ID, nil
}

// VerifySignature checks the checkout signature Razorpay computes over
// "<order_id>|<payment_id>" with the key secret
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := signHex([]byte(g.keySecret), []byte(gatewayOrderID+"|"+gatewayPaymentID))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the webhook signature computed over the raw
// request body with the webhook secret
func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	expected := signHex([]byte(g.webhookSecret), body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func signHex(key, message []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
