package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence shape of order.Order. Addresses are stored
// as JSON through the value object's Valuer/Scanner.
type OrderModel struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderNumber      string              `gorm:"size:16;not null;uniqueIndex"`
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items            []OrderItemModel    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress  valueobject.Address `gorm:"type:jsonb"`
	BillingAddress   valueobject.Address `gorm:"type:jsonb"`
	Subtotal         decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	ShippingCost     decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	TaxAmount        decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	DiscountAmount   decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	TotalAmount      decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Status           string              `gorm:"size:32;not null;index"`
	PaymentMethod    string              `gorm:"size:16;not null"`
	PaymentStatus    string              `gorm:"size:16;not null"`
	GatewayOrderID   string              `gorm:"size:64;index"`
	GatewayPaymentID string              `gorm:"size:64"`
	PaidAt           *time.Time
	TrackingNumber   string `gorm:"size:64"`
	Notes            string `gorm:"type:text"`
	StockDebited     bool   `gorm:"not null;default:false"`
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string `gorm:"size:255"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is one priced line snapshot
type OrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName  string          `gorm:"size:255;not null"`
	ProductImage string          `gorm:"size:512"`
	SKU          string          `gorm:"size:64"`
	Color        string          `gorm:"size:64;not null"`
	Size         string          `gorm:"size:32;not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StockDebited bool            `gorm:"not null;default:false"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// FromOrder maps a domain order onto persistence models
func FromOrder(o *order.Order) *OrderModel {
	m := &OrderModel{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		ShippingAddress:  o.ShippingAddress,
		BillingAddress:   o.BillingAddress,
		Subtotal:         o.Subtotal,
		ShippingCost:     o.ShippingCost,
		TaxAmount:        o.TaxAmount,
		DiscountAmount:   o.DiscountAmount,
		TotalAmount:      o.TotalAmount,
		Status:           string(o.Status),
		PaymentMethod:    string(o.Payment.Method),
		PaymentStatus:    string(o.Payment.Status),
		GatewayOrderID:   o.Payment.GatewayOrderID,
		GatewayPaymentID: o.Payment.GatewayPaymentID,
		PaidAt:           o.Payment.PaidAt,
		TrackingNumber:   o.TrackingNumber,
		Notes:            o.Notes,
		StockDebited:     o.StockDebited,
		DeliveredAt:      o.DeliveredAt,
		CancelledAt:      o.CancelledAt,
		CancelReason:     o.CancelReason,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, item := range o.Items {
		m.Items = append(m.Items, OrderItemModel{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			SKU:          item.SKU,
			Color:        item.Color,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Amount:       item.Amount,
			StockDebited: item.StockDebited,
		})
	}
	return m
}

// ToDomain rebuilds the domain order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OrderNumber:     m.OrderNumber,
		UserID:          m.UserID,
		ShippingAddress: m.ShippingAddress,
		BillingAddress:  m.BillingAddress,
		Subtotal:        m.Subtotal,
		ShippingCost:    m.ShippingCost,
		TaxAmount:       m.TaxAmount,
		DiscountAmount:  m.DiscountAmount,
		TotalAmount:     m.TotalAmount,
		Status:          order.Status(m.Status),
		Payment: order.PaymentInfo{
			Method:           order.PaymentMethod(m.PaymentMethod),
			Status:           order.PaymentStatus(m.PaymentStatus),
			GatewayOrderID:   m.GatewayOrderID,
			GatewayPaymentID: m.GatewayPaymentID,
			PaidAt:           m.PaidAt,
		},
		TrackingNumber: m.TrackingNumber,
		Notes:          m.Notes,
		StockDebited:   m.StockDebited,
		DeliveredAt:    m.DeliveredAt,
		CancelledAt:    m.CancelledAt,
		CancelReason:   m.CancelReason,
	}
	for _, item := range m.Items {
		o.Items = append(o.Items, order.Item{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			SKU:          item.SKU,
			Color:        item.Color,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Amount:       item.Amount,
			StockDebited: item.StockDebited,
		})
	}
	return o
}
