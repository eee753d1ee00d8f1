package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// Create inserts a new order. A unique-constraint violation on the
	// order number surfaces as ALREADY_EXISTS so the sequencer can retry.
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Order, int64, error)
	FindAll(ctx context.Context, page, pageSize int, status Status) ([]Order, int64, error)

	// LastNumberWithPrefix returns the highest existing order number that
	// starts with prefix, or "" when the month bucket is empty
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)

	// ExistsByNumber reports whether an order with this number exists
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
