package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func hexHMAC(key, message string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("key_id", "key_secret", "wh_secret", "http://unused", zap.NewNop())

	valid := hexHMAC("key_secret", "order_abc|pay_xyz")
	assert.True(t, g.VerifySignature("order_abc", "pay_xyz", valid))

	t.Run("tampered payment id", func(t *testing.T) {
		assert.False(t, g.VerifySignature("order_abc", "pay_other", valid))
	})

	t.Run("tampered signature", func(t *testing.T) {
		assert.False(t, g.VerifySignature("order_abc", "pay_xyz", valid[:len(valid)-1]+"0"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := hexHMAC("other_secret", "order_abc|pay_xyz")
		assert.False(t, g.VerifySignature("order_abc", "pay_xyz", forged))
	})
}

func TestVerifyWebhookSignature(t *testing.T) {
	g := NewRazorpayGateway("key_id", "key_secret", "wh_secret", "http://unused", zap.NewNop())
	body := []byte(`{"event":"payment.captured"}`)

	assert.True(t, g.VerifyWebhookSignature(body, hexHMAC("wh_secret", string(body))))
	assert.False(t, g.VerifyWebhookSignature(body, hexHMAC("key_secret", string(body))))
	assert.False(t, g.VerifyWebhookSignature([]byte(`{}`), hexHMAC("wh_secret", string(body))))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","amount":222200,"currency":"INR"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key_id", "key_secret", "wh_secret", srv.URL, zap.NewNop())
	id, err := g.CreateOrder(context.Background(), 222200, "INR", "MDD25080001")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", id)
}

func TestCreateOrderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"BAD_REQUEST_ERROR"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key_id", "key_secret", "wh_secret", srv.URL, zap.NewNop())
	_, err := g.CreateOrder(context.Background(), 100, "INR", "MDD25080001")
	assert.Error(t, err)
}
