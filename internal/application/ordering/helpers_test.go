package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)
	return addr
}

func testOrderItems() []order.Item {
	return []order.Item{
		{
			ProductID:   uuid.New(),
			ProductName: "Linen Shirt",
			SKU:         "LS-BLU-M",
			Color:       "Blue",
			Size:        "M",
			Quantity:    2,
			UnitPrice:   decimal.NewFromInt(899),
		},
	}
}

// orderWithNumber builds a minimal valid order carrying the given number.
// It returns the error instead of failing so goroutines can use it too.
func orderWithNumber(number string) (*order.Order, error) {
	addr, err := valueobject.NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	if err != nil {
		return nil, err
	}
	return order.NewOrder(number, uuid.New(), testOrderItems(), addr, valueobject.Address{}, order.MethodCOD)
}
