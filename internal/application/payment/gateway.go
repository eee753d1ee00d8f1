package payment

import (
	"context"
)

// Gateway abstracts the payment provider. The production implementation
// talks to Razorpay; tests substitute a fake.
type Gateway interface {
	// CreateOrder registers an order with the gateway and returns the
	// gateway-side order id. amountMinor is in the currency's minor unit
	// (paise for INR).
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)

	// VerifySignature checks the HMAC the client returns after a
	// successful checkout, computed over "gatewayOrderID|gatewayPaymentID"
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool

	// VerifyWebhookSignature checks the HMAC the gateway sends with each
	// webhook, computed over the raw request body
	VerifyWebhookSignature(body []byte, signature string) bool
}
