package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/shared"
)

// CartModel is the persistence shape of cart.Cart
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string { return "carts" }

// CartItemModel is one cart line
type CartItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_line,priority:1"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_cart_line,priority:2"`
	Color      string          `gorm:"size:64;not null;uniqueIndex:ux_cart_line,priority:3"`
	Size       string          `gorm:"size:32;not null;uniqueIndex:ux_cart_line,priority:4"`
	Quantity   int             `gorm:"not null"`
	PriceAtAdd decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartItemModel) TableName() string { return "cart_items" }

// FromCart maps a domain cart onto persistence models
func FromCart(c *cart.Cart) *CartModel {
	m := &CartModel{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, item := range c.Items {
		m.Items = append(m.Items, CartItemModel{
			ID:         item.ID,
			CartID:     item.CartID,
			ProductID:  item.ProductID,
			Color:      item.Color,
			Size:       item.Size,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		})
	}
	return m
}

// ToDomain rebuilds the domain cart
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID: m.UserID,
		Items:  make([]cart.Item, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		c.Items = append(c.Items, cart.Item{
			ID:         item.ID,
			CartID:     item.CartID,
			ProductID:  item.ProductID,
			Color:      item.Color,
			Size:       item.Size,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		})
	}
	return c
}
