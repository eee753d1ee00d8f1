package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
)

// Sender delivers a single message. Implementations wrap an email provider.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier publishes order lifecycle events to the customer. All methods
// are fire-and-forget: delivery failures are logged, never surfaced to the
// order flow.
type Notifier interface {
	OrderPlaced(user *identity.User, o *order.Order)
	OrderConfirmed(user *identity.User, o *order.Order)
	OrderCancelled(user *identity.User, o *order.Order)
	OrderStatusChanged(user *identity.User, o *order.Order)
}

const sendTimeout = 10 * time.Second

// EmailNotifier renders order events into plain-text emails and dispatches
// them asynchronously
type EmailNotifier struct {
	sender Sender
	logger *zap.Logger
}

// NewEmailNotifier creates an EmailNotifier
func NewEmailNotifier(sender Sender, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{sender: sender, logger: logger}
}

func (n *EmailNotifier) OrderPlaced(user *identity.User, o *order.Order) {
	subject := fmt.Sprintf("Order %s received", o.OrderNumber)
	body := fmt.Sprintf("Hi %s,\n\nWe have received your order %s for ₹%s. We will let you know as soon as it is confirmed.\n",
		user.Name, o.OrderNumber, o.TotalAmount.StringFixed(2))
	n.dispatch(user.Email, subject, body)
}

func (n *EmailNotifier) OrderConfirmed(user *identity.User, o *order.Order) {
	subject := fmt.Sprintf("Order %s confirmed", o.OrderNumber)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s is confirmed. Total: ₹%s. We are getting it ready.\n",
		user.Name, o.OrderNumber, o.TotalAmount.StringFixed(2))
	n.dispatch(user.Email, subject, body)
}

func (n *EmailNotifier) OrderCancelled(user *identity.User, o *order.Order) {
	subject := fmt.Sprintf("Order %s cancelled", o.OrderNumber)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s has been cancelled.\n", user.Name, o.OrderNumber)
	n.dispatch(user.Email, subject, body)
}

func (n *EmailNotifier) OrderStatusChanged(user *identity.User, o *order.Order) {
	subject := fmt.Sprintf("Order %s update", o.OrderNumber)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.", user.Name, o.OrderNumber, o.Status)
	if o.Status == order.StatusShipped && o.TrackingNumber != "" {
		body += fmt.Sprintf(" Tracking number: %s.", o.TrackingNumber)
	}
	body += "\n"
	n.dispatch(user.Email, subject, body)
}

// dispatch sends in the background. The goroutine gets its own timeout and
// a recover so a panicking sender cannot take the request down with it.
func (n *EmailNotifier) dispatch(to, subject, body string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification sender panicked", zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.sender.Send(ctx, to, subject, body); err != nil {
			n.logger.Warn("notification delivery failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}

// NoopNotifier drops all events. Used when email is not configured.
type NoopNotifier struct{}

func (NoopNotifier) OrderPlaced(*identity.User, *order.Order)        {}
func (NoopNotifier) OrderConfirmed(*identity.User, *order.Order)     {}
func (NoopNotifier) OrderCancelled(*identity.User, *order.Order)     {}
func (NoopNotifier) OrderStatusChanged(*identity.User, *order.Order) {}
