package cart

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartdomain "github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/shared"
)

// Service implements cart operations. The cart is created lazily on first
// use; availability is checked against the live ledger on every mutation but
// nothing is reserved.
type Service struct {
	carts    cartdomain.CartRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewService wires the cart workflow
func NewService(carts cartdomain.CartRepository, products catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{carts: carts, products: products, logger: logger}
}

// GetCart returns the user's cart, creating an empty one on first use
func (s *Service) GetCart(ctx context.Context, userID uuid.UUID) (*cartdomain.Cart, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !isCode(err, "NOT_FOUND") {
		return nil, err
	}

	c, err = cartdomain.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem puts a variant selection into the cart. The merged quantity must
// fit within the variant's current stock.
func (s *Service) AddItem(ctx context.Context, userID, productID uuid.UUID, color, size string, quantity int) (*cartdomain.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "%s is not available", product.Name)
	}
	variant := product.VariantFor(color, size)
	if variant == nil {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "%s is not available in %s/%s", product.Name, color, size)
	}

	item, err := c.AddItem(productID, variant.Color, variant.Size, quantity, product.Price)
	if err != nil {
		return nil, err
	}
	if !variant.Available(item.Quantity) {
		return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %d left of %s (%s/%s)",
			variant.Stock, product.Name, variant.Color, variant.Size)
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem changes a line's quantity, re-checking availability
func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*cartdomain.Cart, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line *cartdomain.Item
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			line = &c.Items[idx]
			break
		}
	}
	if line == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cart item not found")
	}

	product, err := s.products.FindByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if variant := product.VariantFor(line.Color, line.Size); variant != nil && !variant.Available(quantity) {
		return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %d left of %s (%s/%s)",
			variant.Stock, product.Name, line.Color, line.Size)
	}

	if err := c.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops a line from the cart
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*cartdomain.Cart, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isCode(err, "NOT_FOUND") {
			return nil
		}
		return err
	}
	c.Clear()
	return s.carts.Save(ctx, c)
}

func isCode(err error, code string) bool {
	de, ok := err.(*shared.DomainError)
	return ok && de.Code == code
}
