package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)
	return addr
}

func testItems() []Item {
	return []Item{
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

func newTestOrder(t *testing.T, method PaymentMethod) *Order {
	t.Helper()
	addr := testAddress(t)
	o, err := NewOrder("MDD25080001", uuid.New(), testItems(), addr, valueobject.Address{}, method)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t, MethodRazorpay)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentPending, o.Payment.Status)
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(1798)))
	assert.True(t, o.Items[0].Amount.Equal(decimal.NewFromInt(1798)))
	assert.Equal(t, 2, o.ItemCount())
	assert.False(t, o.StockDebited)

	// Billing falls back to shipping when absent.
	assert.True(t, o.BillingAddress.Equals(o.ShippingAddress))
}

func TestNewOrderValidation(t *testing.T) {
	addr := testAddress(t)

	_, err := NewOrder("", uuid.New(), testItems(), addr, valueobject.Address{}, MethodCOD)
	assert.Error(t, err)

	_, err = NewOrder("MDD25080001", uuid.New(), nil, addr, valueobject.Address{}, MethodCOD)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)

	_, err = NewOrder("MDD25080001", uuid.New(), testItems(), valueobject.Address{}, valueobject.Address{}, MethodCOD)
	assert.Error(t, err)

	_, err = NewOrder("MDD25080001", uuid.New(), testItems(), addr, valueobject.Address{}, PaymentMethod("paypal"))
	assert.Error(t, err)
}

func TestApplyCharges(t *testing.T) {
	o := newTestOrder(t, MethodRazorpay)
	o.ApplyCharges(decimal.NewFromInt(100), decimal.NewFromInt(324), decimal.Zero)

	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(2222)))
}

func TestGatewayPaymentFlow(t *testing.T) {
	o := newTestOrder(t, MethodRazorpay)

	require.NoError(t, o.AttachGatewayOrder("order_abc"))
	assert.Equal(t, StatusPaymentPending, o.Status)

	require.NoError(t, o.MarkPaid("pay_xyz"))
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, PaymentCompleted, o.Payment.Status)
	require.NotNil(t, o.Payment.PaidAt)

	// Replays are no-ops.
	paidAt := *o.Payment.PaidAt
	require.NoError(t, o.MarkPaid("pay_other"))
	assert.Equal(t, "pay_xyz", o.Payment.GatewayPaymentID)
	assert.Equal(t, paidAt, *o.Payment.PaidAt)
}

func TestMarkPaymentFailed(t *testing.T) {
	o := newTestOrder(t, MethodRazorpay)
	require.NoError(t, o.AttachGatewayOrder("order_abc"))

	o.MarkPaymentFailed()
	assert.Equal(t, PaymentFailed, o.Payment.Status)
	assert.Equal(t, StatusPaymentPending, o.Status)

	// A later successful payment still goes through.
	require.NoError(t, o.MarkPaid("pay_xyz"))
	assert.Equal(t, PaymentCompleted, o.Payment.Status)

	// Failure after completion does not regress.
	o.MarkPaymentFailed()
	assert.Equal(t, PaymentCompleted, o.Payment.Status)
}

func TestCODFlow(t *testing.T) {
	o := newTestOrder(t, MethodCOD)

	require.NoError(t, o.ConfirmCOD())
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, PaymentPending, o.Payment.Status)

	// Idempotent.
	require.NoError(t, o.ConfirmCOD())

	require.NoError(t, o.UpdateStatus(StatusProcessing, ""))
	require.NoError(t, o.UpdateStatus(StatusShipped, "TRK123"))
	require.NoError(t, o.UpdateStatus(StatusOutForDelivery, ""))
	require.NoError(t, o.UpdateStatus(StatusDelivered, ""))

	// COD settles at delivery.
	assert.Equal(t, PaymentCompleted, o.Payment.Status)
	require.NotNil(t, o.DeliveredAt)
}

func TestConfirmCODRejectsGatewayOrder(t *testing.T) {
	o := newTestOrder(t, MethodRazorpay)
	assert.Error(t, o.ConfirmCOD())
}

func TestUpdateStatusGuards(t *testing.T) {
	o := newTestOrder(t, MethodCOD)
	require.NoError(t, o.ConfirmCOD())
	require.NoError(t, o.UpdateStatus(StatusProcessing, ""))

	t.Run("shipped requires tracking number", func(t *testing.T) {
		err := o.UpdateStatus(StatusShipped, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("skipping states rejected", func(t *testing.T) {
		err := o.UpdateStatus(StatusDelivered, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		assert.Error(t, o.UpdateStatus(Status("lost"), ""))
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancellable states", func(t *testing.T) {
		for _, status := range []Status{StatusPending, StatusPaymentPending, StatusConfirmed, StatusProcessing} {
			o := newTestOrder(t, MethodCOD)
			o.Status = status
			require.NoError(t, o.Cancel("changed my mind"), "status %s", status)
			assert.Equal(t, StatusCancelled, o.Status)
			require.NotNil(t, o.CancelledAt)
			assert.Equal(t, "changed my mind", o.CancelReason)
		}
	})

	t.Run("shipped and beyond cannot cancel", func(t *testing.T) {
		for _, status := range []Status{StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusRefunded} {
			o := newTestOrder(t, MethodCOD)
			o.Status = status
			assert.Error(t, o.Cancel("too late"), "status %s", status)
		}
	})
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusShipped))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusRefunded.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusDelivered.CanTransitionTo(StatusRefunded))
}

func TestMarkRefunded(t *testing.T) {
	t.Run("completed payment is refunded", func(t *testing.T) {
		o := newTestOrder(t, MethodRazorpay)
		require.NoError(t, o.AttachGatewayOrder("order_gw_1"))
		require.NoError(t, o.MarkPaid("pay_1"))

		o.MarkRefunded()
		assert.Equal(t, PaymentRefunded, o.Payment.Status)
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("delivered order moves to refunded status", func(t *testing.T) {
		o := newTestOrder(t, MethodRazorpay)
		require.NoError(t, o.AttachGatewayOrder("order_gw_1"))
		require.NoError(t, o.MarkPaid("pay_1"))
		o.Status = StatusDelivered

		o.MarkRefunded()
		assert.Equal(t, PaymentRefunded, o.Payment.Status)
		assert.Equal(t, StatusRefunded, o.Status)
	})

	t.Run("no-op without a completed payment", func(t *testing.T) {
		o := newTestOrder(t, MethodRazorpay)
		o.MarkRefunded()
		assert.Equal(t, PaymentPending, o.Payment.Status)
	})
}

func TestStockDebitFlags(t *testing.T) {
	twoLines := func(t *testing.T) *Order {
		t.Helper()
		items := append(testItems(), Item{
			ProductID: uuid.New(),
			SKU:       "CT-OLV-L",
			Color:     "Olive",
			Size:      "L",
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(1299),
		})
		o, err := NewOrder("MDD25080001", uuid.New(), items, testAddress(t), valueobject.Address{}, MethodCOD)
		require.NoError(t, err)
		return o
	}

	t.Run("single line", func(t *testing.T) {
		o := twoLines(t)
		o.MarkItemStockDebited(o.Items[1].ID)

		assert.True(t, o.StockDebited)
		assert.False(t, o.Items[0].StockDebited)
		assert.True(t, o.Items[1].StockDebited)
	})

	t.Run("unknown line changes nothing", func(t *testing.T) {
		o := twoLines(t)
		o.MarkItemStockDebited(uuid.New())

		assert.False(t, o.StockDebited)
		assert.False(t, o.Items[0].StockDebited)
		assert.False(t, o.Items[1].StockDebited)
	})

	t.Run("all lines", func(t *testing.T) {
		o := twoLines(t)
		o.MarkStockDebited()

		assert.True(t, o.StockDebited)
		assert.True(t, o.Items[0].StockDebited)
		assert.True(t, o.Items[1].StockDebited)
	})
}
