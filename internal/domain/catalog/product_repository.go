package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]Product, int64, error)

	// DebitStock atomically re-checks and decrements stock for one variant.
	// It fails with INSUFFICIENT_STOCK when the live count cannot cover the
	// quantity, leaving the ledger untouched.
	DebitStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error

	// CreditStock atomically restores stock for one variant (cancellation)
	CreditStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error

	// LowStockVariants lists variants at or below the threshold
	LowStockVariants(ctx context.Context, threshold int) ([]Variant, error)
}
