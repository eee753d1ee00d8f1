package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/notification"
	"github.com/mddstore/backend/internal/application/payment"
	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

const currency = "INR"

// createMaxAttempts bounds insert retries when two checkouts race for the
// same order number
const createMaxAttempts = 5

// AddressInput is the transport-agnostic address payload
type AddressInput struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	ShippingAddress AddressInput  `json:"shipping_address" binding:"required"`
	BillingAddress  *AddressInput `json:"billing_address"`
	PaymentMethod   string        `json:"payment_method" binding:"required,oneof=razorpay cod"`
	Notes           string        `json:"notes"`
}

// CheckoutResult is what a successful checkout hands back. For gateway
// payments it carries what the client needs to open the payment widget.
type CheckoutResult struct {
	Order          *order.Order
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
}

// Service implements the order workflow: checkout from the cart,
// cancellation with conditional stock restore, and admin status updates.
// Stock is only checked at checkout; it is debited when payment confirms.
type Service struct {
	orders    order.OrderRepository
	carts     cart.CartRepository
	products  catalog.ProductRepository
	users     identity.UserRepository
	sequencer *Sequencer
	pricer    *Pricer
	gateway   payment.Gateway
	notifier  notification.Notifier
	logger    *zap.Logger
}

// NewService wires the order workflow
func NewService(
	orders order.OrderRepository,
	carts cart.CartRepository,
	products catalog.ProductRepository,
	users identity.UserRepository,
	sequencer *Sequencer,
	pricer *Pricer,
	gateway payment.Gateway,
	notifier notification.Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:    orders,
		carts:     carts,
		products:  products,
		users:     users,
		sequencer: sequencer,
		pricer:    pricer,
		gateway:   gateway,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateOrder turns the user's cart into an order. Stock is verified against
// the live ledger but NOT debited here; the debit happens at payment
// confirmation. For gateway payments a gateway-side order is registered and
// the order moves to payment_pending; COD orders stay pending until the
// customer confirms.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*CheckoutResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	userCart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isCode(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
		}
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	shipping, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	billing := valueobject.Address{}
	if req.BillingAddress != nil {
		billing, err = toAddress(*req.BillingAddress)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.snapshotItems(ctx, userCart)
	if err != nil {
		return nil, err
	}

	method := order.PaymentMethod(req.PaymentMethod)

	o, err := s.persistWithFreshNumber(ctx, userID, items, shipping, billing, method, req.Notes)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: o, Currency: currency}

	if method == order.MethodRazorpay {
		amountMinor := o.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()
		gatewayOrderID, err := s.gateway.CreateOrder(ctx, amountMinor, currency, o.OrderNumber)
		if err != nil {
			// The order stays pending so the customer can retry payment.
			s.logger.Error("gateway order creation failed",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
			return nil, shared.NewDomainError("UPSTREAM_ERROR", "Payment gateway is unavailable, please retry")
		}
		if err := o.AttachGatewayOrder(gatewayOrderID); err != nil {
			return nil, err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return nil, err
		}
		result.GatewayOrderID = gatewayOrderID
		result.AmountMinor = amountMinor
	}

	userCart.Clear()
	if err := s.carts.Save(ctx, userCart); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("order_number", o.OrderNumber), zap.Error(err))
	}

	s.notifier.OrderPlaced(user, o)

	s.logger.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("method", string(method)),
		zap.String("total", o.TotalAmount.String()))

	return result, nil
}

// snapshotItems prices the cart against the live catalog and verifies that
// every selected variant can still cover the requested quantity
func (s *Service) snapshotItems(ctx context.Context, userCart *cart.Cart) ([]order.Item, error) {
	items := make([]order.Item, 0, len(userCart.Items))
	for _, line := range userCart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Active {
			return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "%s is no longer available", product.Name)
		}
		variant := product.VariantFor(line.Color, line.Size)
		if variant == nil {
			return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "%s (%s/%s) is no longer available",
				product.Name, line.Color, line.Size)
		}
		if !variant.Available(line.Quantity) {
			return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %d left of %s (%s/%s)",
				variant.Stock, product.Name, variant.Color, variant.Size)
		}
		items = append(items, order.Item{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			SKU:          variant.SKU,
			Color:        variant.Color,
			Size:         variant.Size,
			Quantity:     line.Quantity,
			UnitPrice:    product.Price,
		})
	}
	return items, nil
}

// persistWithFreshNumber allocates a number and inserts the order, retrying
// when a concurrent checkout wins the same number at insert time
func (s *Service) persistWithFreshNumber(
	ctx context.Context,
	userID uuid.UUID,
	items []order.Item,
	shipping, billing valueobject.Address,
	method order.PaymentMethod,
	notes string,
) (*order.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= createMaxAttempts; attempt++ {
		number, err := s.sequencer.Next(ctx)
		if err != nil {
			return nil, err
		}

		o, err := order.NewOrder(number, userID, items, shipping, billing, method)
		if err != nil {
			return nil, err
		}
		o.Notes = notes

		charges := s.pricer.Compute(o.Subtotal, decimal.Zero)
		o.ApplyCharges(charges.Shipping, charges.Tax, charges.Discount)

		if err := s.orders.Create(ctx, o); err != nil {
			if isCode(err, "ALREADY_EXISTS") {
				s.logger.Warn("order number taken at insert, retrying",
					zap.String("order_number", number), zap.Int("attempt", attempt))
				lastErr = err
				continue
			}
			return nil, err
		}
		return o, nil
	}
	s.logger.Error("order insert retries exhausted", zap.Error(lastErr))
	return nil, shared.NewDomainError("SEQUENCE_EXHAUSTED", "Could not allocate an order number, please retry")
}

// CancelOrder cancels an order on behalf of its owner (or an admin). Stock
// returns to the ledger only when this order had actually debited it.
func (s *Service) CancelOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID uuid.UUID, reason string) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot cancel this order")
	}

	if err := o.Cancel(reason); err != nil {
		return nil, err
	}

	if o.StockDebited {
		for _, item := range o.Items {
			// A line can miss its debit when the variant came up short at
			// confirmation; crediting it back would inflate the ledger.
			if !item.StockDebited {
				continue
			}
			if err := s.products.CreditStock(ctx, item.ProductID, item.Color, item.Size, item.Quantity); err != nil {
				// The cancellation stands; a missed credit is an
				// inventory correction, not a reason to fail the user.
				s.logger.Error("stock restore failed on cancellation",
					zap.String("order_number", o.OrderNumber),
					zap.String("sku", item.SKU),
					zap.Error(err))
			}
		}
	}

	if o.Payment.Status == order.PaymentCompleted {
		o.MarkRefunded()
		s.logger.Info("order payment marked for refund",
			zap.String("order_number", o.OrderNumber),
			zap.String("gateway_payment_id", o.Payment.GatewayPaymentID))
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if user, err := s.users.FindByID(ctx, o.UserID); err == nil {
		s.notifier.OrderCancelled(user, o)
	}

	return o, nil
}

// UpdateStatus performs an admin status change and notifies the customer
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, target order.Status, trackingNumber string) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.UpdateStatus(target, trackingNumber); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if user, err := s.users.FindByID(ctx, o.UserID); err == nil {
		s.notifier.OrderStatusChanged(user, o)
	}

	return o, nil
}

// GetOrder fetches one order, enforcing ownership for non-admins
func (s *Service) GetOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot view this order")
	}
	return o, nil
}

// GetOrderByNumber fetches one order by its number, enforcing ownership for
// non-admins
func (s *Service) GetOrderByNumber(ctx context.Context, userID uuid.UUID, isAdmin bool, number string) (*order.Order, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot view this order")
	}
	return o, nil
}

// ListUserOrders pages through the user's own orders, newest first
func (s *Service) ListUserOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]order.Order, int64, error) {
	return s.orders.FindByUser(ctx, userID, page, pageSize)
}

// ListOrders pages through all orders for the admin view, optionally
// filtered by status
func (s *Service) ListOrders(ctx context.Context, page, pageSize int, status order.Status) ([]order.Order, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown order status: %s", status)
	}
	return s.orders.FindAll(ctx, page, pageSize, status)
}

func toAddress(in AddressInput) (valueobject.Address, error) {
	return valueobject.NewAddress(in.Name, in.Phone, in.Line1, in.Line2, in.City, in.State, in.PostalCode)
}

func isCode(err error, code string) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
