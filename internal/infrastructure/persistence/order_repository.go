package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/infrastructure/persistence/models"
)

// OrderRepository is the GORM-backed order repository. The unique index on
// order_number backs the sequencer's optimistic allocation.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := r.db.WithContext(ctx).Create(models.FromOrder(o)).Error
	return translate(err, "Order not found", "Order number already exists")
}

// Save updates the order row. Line snapshots never change after creation
// except for the per-line debit flag, so only that column is written back.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	m := models.FromOrder(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(m).Error; err != nil {
			return err
		}
		for _, item := range m.Items {
			if err := tx.Model(&models.OrderItemModel{}).
				Where("id = ?", item.ID).
				Update("stock_debited", item.StockDebited).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "Order not found", "Order number already exists")
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.findOne(ctx, "order_number = ?", number)
}

func (r *OrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	return r.findOne(ctx, "gateway_order_id = ?", gatewayOrderID)
}

func (r *OrderRepository) findOne(ctx context.Context, cond string, arg interface{}) (*order.Order, error) {
	var m models.OrderModel
	err := r.db.WithContext(ctx).Preload("Items").First(&m, cond, arg).Error
	if err != nil {
		return nil, translate(err, "Order not found", "")
	}
	return m.ToDomain(), nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]order.Order, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), page, pageSize)
}

func (r *OrderRepository) FindAll(ctx context.Context, page, pageSize int, status order.Status) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	return r.list(ctx, query, page, pageSize)
}

func (r *OrderRepository) list(ctx context.Context, query *gorm.DB, page, pageSize int) ([]order.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]order.Order, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// LastNumberWithPrefix returns the highest order number in a month bucket,
// or "" when the bucket is empty
func (r *OrderRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func (r *OrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("order_number = ?", number).
		Count(&count).Error
	return count > 0, err
}
