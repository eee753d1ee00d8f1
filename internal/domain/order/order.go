package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPending        Status = "pending"
	StatusPaymentPending Status = "payment_pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

// statusTransitions maps each status to the statuses it may move to.
// cancelled and refunded are absorbing.
var statusTransitions = map[Status][]Status{
	StatusPending:        {StatusPaymentPending, StatusConfirmed, StatusCancelled},
	StatusPaymentPending: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery, StatusDelivered},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusRefunded},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// cancellableStatuses are the states a customer may cancel from
var cancellableStatuses = map[Status]bool{
	StatusPending:        true,
	StatusPaymentPending: true,
	StatusConfirmed:      true,
	StatusProcessing:     true,
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine permits moving to target
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentMethod identifies how an order is paid
type PaymentMethod string

const (
	MethodRazorpay PaymentMethod = "razorpay"
	MethodCOD      PaymentMethod = "cod"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == MethodRazorpay || m == MethodCOD
}

// PaymentStatus tracks the payment leg independently of order status
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentInfo holds the payment leg of an order
type PaymentInfo struct {
	Method           PaymentMethod
	Status           PaymentStatus
	GatewayOrderID   string
	GatewayPaymentID string
	PaidAt           *time.Time
}

// Item is a priced snapshot of a product variant at checkout time. Later
// catalog edits never change what the order shows.
type Item struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductImage string
	SKU          string
	Color        string
	Size         string
	Quantity     int
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal
	StockDebited bool
}

// Order is the order aggregate root
type Order struct {
	shared.BaseEntity
	OrderNumber     string
	UserID          uuid.UUID
	Items           []Item
	ShippingAddress valueobject.Address
	BillingAddress  valueobject.Address
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          Status
	Payment         PaymentInfo
	TrackingNumber  string
	Notes           string
	StockDebited    bool
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewOrder creates a pending order from priced line snapshots
func NewOrder(orderNumber string, userID uuid.UUID, items []Item, shipping, billing valueobject.Address, method PaymentMethod) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Order must contain at least one item")
	}
	if shipping.IsEmpty() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Shipping address is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown payment method: %s", method)
	}
	if billing.IsEmpty() {
		billing = shipping
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		Items:           make([]Item, 0, len(items)),
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Subtotal:        decimal.Zero,
		ShippingCost:    decimal.Zero,
		TaxAmount:       decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TotalAmount:     decimal.Zero,
		Status:          StatusPending,
		Payment: PaymentInfo{
			Method: method,
			Status: PaymentPending,
		},
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
		item.ID = uuid.New()
		item.OrderID = o.ID
		item.Amount = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		o.Items = append(o.Items, item)
		o.Subtotal = o.Subtotal.Add(item.Amount)
	}
	o.TotalAmount = o.Subtotal
	return o, nil
}

// ApplyCharges sets the computed charges and the grand total
func (o *Order) ApplyCharges(shipping, tax, discount decimal.Decimal) {
	o.ShippingCost = shipping
	o.TaxAmount = tax
	o.DiscountAmount = discount
	o.TotalAmount = o.Subtotal.Add(shipping).Add(tax).Sub(discount)
	o.Touch()
}

// ItemCount returns the total unit count across all lines
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// AttachGatewayOrder records the gateway-side order id and moves the order
// into payment_pending
func (o *Order) AttachGatewayOrder(gatewayOrderID string) error {
	if o.Payment.Method != MethodRazorpay {
		return shared.NewDomainError("INVALID_STATE", "Only gateway orders carry a gateway order ID")
	}
	if err := o.transitionTo(StatusPaymentPending); err != nil {
		return err
	}
	o.Payment.GatewayOrderID = gatewayOrderID
	return nil
}

// MarkPaid records a completed gateway payment and confirms the order.
// Calling it on an already-paid order is a no-op so webhook retries and the
// client-side verify callback cannot double-apply.
func (o *Order) MarkPaid(gatewayPaymentID string) error {
	if o.Payment.Status == PaymentCompleted {
		return nil
	}
	if err := o.transitionTo(StatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	o.Payment.Status = PaymentCompleted
	o.Payment.GatewayPaymentID = gatewayPaymentID
	o.Payment.PaidAt = &now
	return nil
}

// MarkPaymentFailed records a failed gateway payment. The order stays where
// it is so the customer can retry or cancel.
func (o *Order) MarkPaymentFailed() {
	if o.Payment.Status == PaymentCompleted {
		return
	}
	o.Payment.Status = PaymentFailed
	o.Touch()
}

// MarkRefunded records that a completed payment was returned to the
// customer. Only the payment leg changes; delivered orders additionally
// move to the refunded status.
func (o *Order) MarkRefunded() {
	if o.Payment.Status != PaymentCompleted {
		return
	}
	o.Payment.Status = PaymentRefunded
	if o.Status == StatusDelivered {
		o.Status = StatusRefunded
	}
	o.Touch()
}

// ConfirmCOD confirms a cash-on-delivery order. Payment stays pending until
// delivery.
func (o *Order) ConfirmCOD() error {
	if o.Payment.Method != MethodCOD {
		return shared.NewDomainError("INVALID_STATE", "Order is not cash on delivery")
	}
	if o.Status == StatusConfirmed {
		return nil
	}
	return o.transitionTo(StatusConfirmed)
}

// MarkStockDebited records that inventory was debited for every line
func (o *Order) MarkStockDebited() {
	for i := range o.Items {
		o.Items[i].StockDebited = true
	}
	o.StockDebited = true
	o.Touch()
}

// MarkItemStockDebited records that inventory was debited for a single
// line. The order-level flag follows so cancellation knows there is
// something to restore.
func (o *Order) MarkItemStockDebited(itemID uuid.UUID) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].StockDebited = true
			o.StockDebited = true
			o.Touch()
			return
		}
	}
}

// Cancel cancels the order if its state allows it
func (o *Order) Cancel(reason string) error {
	if !cancellableStatuses[o.Status] {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot cancel order in status %s", o.Status)
	}
	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.Touch()
	return nil
}

// IsCancellable reports whether the customer may still cancel
func (o *Order) IsCancellable() bool {
	return cancellableStatuses[o.Status]
}

// UpdateStatus performs an admin-driven status change. Moving to shipped
// requires a tracking number; reaching delivered stamps DeliveredAt and
// settles COD payment.
func (o *Order) UpdateStatus(target Status, trackingNumber string) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown order status: %s", target)
	}
	if target == StatusShipped && trackingNumber == "" && o.TrackingNumber == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tracking number is required to mark an order shipped")
	}
	if err := o.transitionTo(target); err != nil {
		return err
	}
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	if target == StatusDelivered {
		now := time.Now()
		o.DeliveredAt = &now
		if o.Payment.Method == MethodCOD && o.Payment.Status == PaymentPending {
			o.Payment.Status = PaymentCompleted
			o.Payment.PaidAt = &now
		}
	}
	return nil
}

func (o *Order) transitionTo(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.Touch()
	return nil
}
