package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence operations for carts. A user has at
// most one cart; FindByUser returns NOT_FOUND when none exists yet.
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	Save(ctx context.Context, cart *Cart) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
