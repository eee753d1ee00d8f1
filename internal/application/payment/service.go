package payment

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/notification"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
)

const currency = "INR"

// VerifyRequest is the client-side payment callback payload
type VerifyRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// IntentResult is what the client needs to open the gateway checkout widget
type IntentResult struct {
	Order          *order.Order
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
}

// Service confirms payments from the client callback, the gateway webhook
// and COD confirmation. All three converge on the same confirm path, which
// is where stock is debited.
type Service struct {
	orders      order.OrderRepository
	products    catalog.ProductRepository
	users       identity.UserRepository
	gateway     Gateway
	idempotency IdempotencyStore
	notifier    notification.Notifier
	logger      *zap.Logger
}

// NewService wires the payment workflow
func NewService(
	orders order.OrderRepository,
	products catalog.ProductRepository,
	users identity.UserRepository,
	gateway Gateway,
	idempotency IdempotencyStore,
	notifier notification.Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:      orders,
		products:    products,
		users:       users,
		gateway:     gateway,
		idempotency: idempotency,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateIntent creates (or returns the existing) gateway-side order for a
// checkout that did not get one, such as after a gateway outage at checkout
// time. Rejected once the payment completed.
func (s *Service) CreateIntent(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*IntentResult, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot pay for this order")
	}
	if o.Payment.Method != order.MethodRazorpay {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is not paid through the gateway")
	}
	if o.Payment.Status == order.PaymentCompleted {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}

	amountMinor := o.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()
	if o.Payment.GatewayOrderID != "" {
		return &IntentResult{Order: o, GatewayOrderID: o.Payment.GatewayOrderID, AmountMinor: amountMinor, Currency: currency}, nil
	}

	gatewayOrderID, err := s.gateway.CreateOrder(ctx, amountMinor, currency, o.OrderNumber)
	if err != nil {
		s.logger.Error("gateway order creation failed",
			zap.String("order_number", o.OrderNumber), zap.Error(err))
		return nil, shared.NewDomainError("UPSTREAM_ERROR", "Payment gateway is unavailable")
	}
	if err := o.AttachGatewayOrder(gatewayOrderID); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	return &IntentResult{Order: o, GatewayOrderID: gatewayOrderID, AmountMinor: amountMinor, Currency: currency}, nil
}

// Verify handles the callback the client posts after completing checkout in
// the gateway widget. A bad signature leaves the order untouched.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, req VerifyRequest) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot pay for this order")
	}
	if o.Payment.GatewayOrderID == "" || o.Payment.GatewayOrderID != req.GatewayOrderID {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Gateway order does not match this order")
	}
	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.logger.Warn("payment signature verification failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("gateway_order_id", req.GatewayOrderID))
		return nil, shared.NewDomainError("INVALID_SIGNATURE", "Payment signature verification failed")
	}

	if err := s.confirm(ctx, o, req.GatewayPaymentID); err != nil {
		return nil, err
	}
	return o, nil
}

// webhookEvent mirrors the slice of the gateway's webhook payload we act on
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes a gateway webhook delivery. The signature is
// verified over the raw body with the webhook secret. Redeliveries and
// unknown event types are acknowledged without effect. Per-event handler
// failures are acknowledged too, so the gateway does not retry forever
// against a poisoned event, but the event key is released first so a
// redelivery after a transient failure gets another chance.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature, eventID string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Malformed webhook payload")
	}

	key := eventID
	if key == "" {
		key = event.Event + ":" + event.Payload.Payment.Entity.ID
	}
	first, markErr := s.idempotency.MarkProcessed(ctx, key)
	if markErr != nil {
		// Degrade to the order-level payment status guard.
		s.logger.Warn("idempotency store unavailable", zap.Error(markErr))
	} else if !first {
		s.logger.Info("duplicate webhook delivery ignored", zap.String("event_id", key))
		return nil
	}

	var handlerErr error
	switch event.Event {
	case "payment.captured":
		handlerErr = s.handleCaptured(ctx, event)
	case "payment.failed":
		handlerErr = s.handleFailed(ctx, event)
	case "refund.processed":
		handlerErr = s.handleRefunded(ctx, event)
	default:
		s.logger.Info("ignoring webhook event", zap.String("event", event.Event))
	}

	if handlerErr != nil {
		s.logger.Error("webhook event handling failed",
			zap.String("event", event.Event),
			zap.String("gateway_order_id", event.Payload.Payment.Entity.OrderID),
			zap.Error(handlerErr))
		// Give the key back, otherwise a redelivery would be dropped as a
		// duplicate and the event lost for good.
		if markErr == nil {
			if err := s.idempotency.Release(ctx, key); err != nil {
				s.logger.Warn("idempotency key release failed",
					zap.String("event_id", key), zap.Error(err))
			}
		}
	}
	return nil
}

func (s *Service) handleCaptured(ctx context.Context, event webhookEvent) error {
	o, err := s.orders.FindByGatewayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
	if err != nil {
		return err
	}
	return s.confirm(ctx, o, event.Payload.Payment.Entity.ID)
}

func (s *Service) handleFailed(ctx context.Context, event webhookEvent) error {
	o, err := s.orders.FindByGatewayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
	if err != nil {
		return err
	}
	o.MarkPaymentFailed()
	return s.orders.Save(ctx, o)
}

func (s *Service) handleRefunded(ctx context.Context, event webhookEvent) error {
	o, err := s.orders.FindByGatewayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
	if err != nil {
		return err
	}
	o.MarkRefunded()
	return s.orders.Save(ctx, o)
}

// ConfirmCOD confirms a cash-on-delivery order on behalf of its owner.
// Payment itself stays pending until delivery, but stock is debited now.
func (s *Service) ConfirmCOD(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot confirm this order")
	}

	alreadyConfirmed := o.Status == order.StatusConfirmed
	if err := o.ConfirmCOD(); err != nil {
		return nil, err
	}
	if alreadyConfirmed {
		return o, nil
	}

	s.debitStock(ctx, o)
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if user, err := s.users.FindByID(ctx, o.UserID); err == nil {
		s.notifier.OrderConfirmed(user, o)
	}
	return o, nil
}

// confirm applies a completed gateway payment: mark paid, debit stock once,
// persist and notify. Re-confirming an already-paid order is a no-op.
func (s *Service) confirm(ctx context.Context, o *order.Order, gatewayPaymentID string) error {
	if o.Payment.Status == order.PaymentCompleted {
		return nil
	}
	if err := o.MarkPaid(gatewayPaymentID); err != nil {
		return err
	}

	s.debitStock(ctx, o)
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}

	if user, err := s.users.FindByID(ctx, o.UserID); err == nil {
		s.notifier.OrderConfirmed(user, o)
	}

	s.logger.Info("payment confirmed",
		zap.String("order_number", o.OrderNumber),
		zap.String("gateway_payment_id", gatewayPaymentID))
	return nil
}

// debitStock runs the deferred inventory debit. Stock was only checked at
// checkout, so a line can come up short here; the order still confirms and
// the shortfall is logged for manual correction. Only lines that actually
// debited are flagged, so cancellation never credits back a line that was
// never taken from the ledger.
func (s *Service) debitStock(ctx context.Context, o *order.Order) {
	for i := range o.Items {
		item := &o.Items[i]
		if item.StockDebited {
			continue
		}
		if err := s.products.DebitStock(ctx, item.ProductID, item.Color, item.Size, item.Quantity); err != nil {
			s.logger.Error("stock debit failed at payment confirmation",
				zap.String("order_number", o.OrderNumber),
				zap.String("sku", item.SKU),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			continue
		}
		o.MarkItemStockDebited(item.ID)
	}
}
