package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/shared"
)

// ProductModel is the persistence shape of catalog.Product
type ProductModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name           string           `gorm:"size:255;not null"`
	Slug           string           `gorm:"size:255;not null;uniqueIndex"`
	Description    string           `gorm:"type:text"`
	Price          decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	CompareAtPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ImageURL       string           `gorm:"size:512"`
	Active         bool             `gorm:"not null;default:true;index"`
	Variants       []VariantModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProductModel) TableName() string { return "products" }

// VariantModel is one (color, size) row of a product's inventory ledger
type VariantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_variant_combo,priority:1"`
	Color     string    `gorm:"size:64;not null;uniqueIndex:ux_variant_combo,priority:2"`
	Size      string    `gorm:"size:32;not null;uniqueIndex:ux_variant_combo,priority:3"`
	SKU       string    `gorm:"size:64;not null;uniqueIndex"`
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (VariantModel) TableName() string { return "product_variants" }

// FromProduct maps a domain product onto persistence models
func FromProduct(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		ImageURL:       p.ImageURL,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, v := range p.Variants {
		m.Variants = append(m.Variants, VariantModel{
			ID:        v.ID,
			ProductID: v.ProductID,
			Color:     v.Color,
			Size:      v.Size,
			SKU:       v.SKU,
			Stock:     v.Stock,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}
	return m
}

// ToDomain rebuilds the domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		Price:          m.Price,
		CompareAtPrice: m.CompareAtPrice,
		ImageURL:       m.ImageURL,
		Active:         m.Active,
	}
	for _, v := range m.Variants {
		p.Variants = append(p.Variants, catalog.Variant{
			ID:        v.ID,
			ProductID: v.ProductID,
			Color:     v.Color,
			Size:      v.Size,
			SKU:       v.SKU,
			Stock:     v.Stock,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}
	return p
}

// ToDomainVariant rebuilds one domain variant
func (m *VariantModel) ToDomainVariant() catalog.Variant {
	return catalog.Variant{
		ID:        m.ID,
		ProductID: m.ProductID,
		Color:     m.Color,
		Size:      m.Size,
		SKU:       m.SKU,
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
