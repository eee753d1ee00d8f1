package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/infrastructure/persistence/models"
)

// CartRepository is the GORM-backed cart repository
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	err := r.db.WithContext(ctx).Create(models.FromCart(c)).Error
	return translate(err, "Cart not found", "User already has a cart")
}

// Save replaces the cart row and its line set
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	m := models.FromCart(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", m.ID).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		items := m.Items
		m.Items = nil
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
	return translate(err, "Cart not found", "User already has a cart")
}

func (r *CartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var m models.CartModel
	err := r.db.WithContext(ctx).Preload("Items").First(&m, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err, "Cart not found", "")
	}
	return m.ToDomain(), nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.CartModel
		if err := tx.First(&m, "user_id = ?", userID).Error; err != nil {
			return translate(err, "Cart not found", "")
		}
		if err := tx.Where("cart_id = ?", m.ID).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}
