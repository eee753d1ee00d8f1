package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/infrastructure/persistence/models"
)

// ProductRepository is the GORM-backed catalog repository
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	err := r.db.WithContext(ctx).Create(models.FromProduct(product)).Error
	return translate(err, "Product not found", "A product with this slug or SKU already exists")
}

// Save replaces the product row and its variant set
func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	m := models.FromProduct(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", m.ID).Delete(&models.VariantModel{}).Error; err != nil {
			return err
		}
		variants := m.Variants
		m.Variants = nil
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if len(variants) > 0 {
			return tx.Create(&variants).Error
		}
		return nil
	})
	return translate(err, "Product not found", "A product with this slug or SKU already exists")
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Select("Variants").Delete(&models.ProductModel{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	err := r.db.WithContext(ctx).Preload("Variants").First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Product not found", "")
	}
	return m.ToDomain(), nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var m models.ProductModel
	err := r.db.WithContext(ctx).Preload("Variants").First(&m, "slug = ?", slug).Error
	if err != nil {
		return nil, translate(err, "Product not found", "")
	}
	return m.ToDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	err := query.Preload("Variants").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// DebitStock decrements a variant's stock in one guarded statement, so two
// concurrent debits cannot take the ledger below zero
func (r *ProductRepository) DebitStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Debit quantity must be positive")
	}
	res := r.db.WithContext(ctx).Model(&models.VariantModel{}).
		Where("product_id = ? AND LOWER(color) = LOWER(?) AND LOWER(size) = LOWER(?) AND stock >= ?",
			productID, color, size, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.classifyStockMiss(ctx, productID, color, size)
	}
	return nil
}

// CreditStock restores stock to a variant
func (r *ProductRepository) CreditStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit quantity must be positive")
	}
	res := r.db.WithContext(ctx).Model(&models.VariantModel{}).
		Where("product_id = ? AND LOWER(color) = LOWER(?) AND LOWER(size) = LOWER(?)",
			productID, color, size).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.NewDomainError("NOT_FOUND", "Variant not found")
	}
	return nil
}

func (r *ProductRepository) LowStockVariants(ctx context.Context, threshold int) ([]catalog.Variant, error) {
	var rows []models.VariantModel
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Variant, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomainVariant())
	}
	return out, nil
}

// classifyStockMiss distinguishes a missing variant from an insufficient one
func (r *ProductRepository) classifyStockMiss(ctx context.Context, productID uuid.UUID, color, size string) error {
	var v models.VariantModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND LOWER(color) = LOWER(?) AND LOWER(size) = LOWER(?)", productID, color, size).
		First(&v).Error
	if err != nil {
		return translate(err, "Variant not found", "")
	}
	return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %d in stock", v.Stock)
}
