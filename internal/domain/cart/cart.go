package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/shared"
)

// Item is one cart line: a (product, color, size) triple with quantity and
// the unit price captured when the item was first added.
type Item struct {
	ID         uuid.UUID
	CartID     uuid.UUID
	ProductID  uuid.UUID
	Color      string
	Size       string
	Quantity   int
	PriceAtAdd decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Amount returns the line total (price at add time x quantity)
func (i *Item) Amount() decimal.Decimal {
	return i.PriceAtAdd.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the per-user cart aggregate. Each user owns at most one cart and
// each (product, color, size) triple appears at most once; adding the same
// triple again merges quantities.
type Cart struct {
	shared.BaseEntity
	UserID uuid.UUID
	Items  []Item
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Items:      make([]Item, 0),
	}, nil
}

// AddItem adds a variant selection to the cart. If the same
// (product, color, size) triple is already present the quantities merge and
// the original price-at-add is kept.
func (c *Cart) AddItem(productID uuid.UUID, color, size string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	color = strings.TrimSpace(color)
	size = strings.TrimSpace(size)

	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if color == "" || size == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Color and size are required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}

	if existing := c.findItem(productID, color, size); existing != nil {
		existing.Quantity += quantity
		existing.UpdatedAt = time.Now()
		c.Touch()
		return existing, nil
	}

	now := time.Now()
	item := Item{
		ID:         uuid.New(),
		CartID:     c.ID,
		ProductID:  productID,
		Color:      color,
		Size:       size,
		Quantity:   quantity,
		PriceAtAdd: unitPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	c.Items = append(c.Items, item)
	c.Touch()
	return &c.Items[len(c.Items)-1], nil
}

// UpdateItemQuantity sets the quantity for an existing line
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a line from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Cart item not found")
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.Touch()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the total unit count across all lines. Derived, never
// stored.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of line amounts. Derived, never stored.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for idx := range c.Items {
		subtotal = subtotal.Add(c.Items[idx].Amount())
	}
	return subtotal
}

func (c *Cart) findItem(productID uuid.UUID, color, size string) *Item {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID &&
			strings.EqualFold(c.Items[idx].Color, color) &&
			strings.EqualFold(c.Items[idx].Size, size) {
			return &c.Items[idx]
		}
	}
	return nil
}
