package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/shared"
)

// Variant is one sellable (color, size) combination of a product. Each
// variant carries its own SKU and stock count; the set of variants forms the
// product's inventory ledger.
type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Color     string
	Size      string
	SKU       string
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available reports whether the variant can cover the requested quantity
func (v *Variant) Available(quantity int) bool {
	return quantity > 0 && v.Stock >= quantity
}

// Debit removes quantity units of stock. Stock never goes negative; callers
// must treat INSUFFICIENT_STOCK as a conflict with a concurrent buyer.
func (v *Variant) Debit(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Debit quantity must be positive")
	}
	if v.Stock < quantity {
		return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
			"Insufficient stock for %s/%s: have %d, need %d", v.Color, v.Size, v.Stock, quantity)
	}
	v.Stock -= quantity
	v.UpdatedAt = time.Now()
	return nil
}

// Credit returns quantity units of stock (order cancellation)
func (v *Variant) Credit(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit quantity must be positive")
	}
	v.Stock += quantity
	v.UpdatedAt = time.Now()
	return nil
}

// Product is the catalog aggregate root
type Product struct {
	shared.BaseEntity
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	ImageURL       string
	Variants       []Variant
	Active         bool
}

// NewProduct creates a new product with no variants
func NewProduct(name, slug, description string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))

	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name is required")
	}
	if slug == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product slug is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        slug,
		Description: description,
		Price:       price,
		Variants:    make([]Variant, 0),
		Active:      true,
	}, nil
}

// SetCompareAtPrice sets the optional strike-through price
func (p *Product) SetCompareAtPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Compare-at price cannot be negative")
	}
	p.CompareAtPrice = &price
	p.Touch()
	return nil
}

// AddVariant adds a (color, size) combination to the ledger. Combinations
// must be unique per product.
func (p *Product) AddVariant(color, size, sku string, stock int) (*Variant, error) {
	color = strings.TrimSpace(color)
	size = strings.TrimSpace(size)
	sku = strings.TrimSpace(sku)

	if color == "" || size == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Variant color and size are required")
	}
	if sku == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Variant SKU is required")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Variant stock cannot be negative")
	}
	if p.VariantFor(color, size) != nil {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Variant %s/%s already exists", color, size)
	}

	now := time.Now()
	variant := Variant{
		ID:        uuid.New(),
		ProductID: p.ID,
		Color:     color,
		Size:      size,
		SKU:       sku,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Variants = append(p.Variants, variant)
	p.Touch()
	return &p.Variants[len(p.Variants)-1], nil
}

// RemoveVariant deletes a variant from the ledger
func (p *Product) RemoveVariant(variantID uuid.UUID) error {
	for idx, v := range p.Variants {
		if v.ID == variantID {
			p.Variants = append(p.Variants[:idx], p.Variants[idx+1:]...)
			p.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Variant not found")
}

// VariantFor returns the variant for a (color, size) combination, or nil.
// Matching is case-insensitive.
func (p *Product) VariantFor(color, size string) *Variant {
	for idx := range p.Variants {
		if strings.EqualFold(p.Variants[idx].Color, color) && strings.EqualFold(p.Variants[idx].Size, size) {
			return &p.Variants[idx]
		}
	}
	return nil
}

// StockFor returns the live stock for a (color, size) combination, 0 if the
// combination does not exist.
func (p *Product) StockFor(color, size string) int {
	if v := p.VariantFor(color, size); v != nil {
		return v.Stock
	}
	return 0
}

// Colors returns the distinct variant colors in ledger order
func (p *Product) Colors() []string {
	seen := make(map[string]struct{})
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if _, ok := seen[v.Color]; !ok {
			seen[v.Color] = struct{}{}
			colors = append(colors, v.Color)
		}
	}
	return colors
}

// Sizes returns the distinct variant sizes in ledger order
func (p *Product) Sizes() []string {
	seen := make(map[string]struct{})
	sizes := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if _, ok := seen[v.Size]; !ok {
			seen[v.Size] = struct{}{}
			sizes = append(sizes, v.Size)
		}
	}
	return sizes
}

// TotalStock returns the sum of stock across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// SetImageURL records the public URL of the uploaded product image
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.Touch()
}

// Deactivate hides the product from the storefront without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// Activate makes the product visible on the storefront
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}
