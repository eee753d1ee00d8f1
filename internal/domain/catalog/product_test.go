package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mddstore/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("Linen Shirt", "linen-shirt", "Breathable summer shirt", decimal.NewFromInt(899))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := newTestProduct(t)
		assert.Equal(t, "linen-shirt", p.Slug)
		assert.True(t, p.Active)
		assert.Empty(t, p.Variants)
	})

	t.Run("normalizes slug", func(t *testing.T) {
		p, err := NewProduct("Linen Shirt", "  Linen-Shirt ", "", decimal.NewFromInt(899))
		require.NoError(t, err)
		assert.Equal(t, "linen-shirt", p.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "linen-shirt", "", decimal.NewFromInt(899))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Linen Shirt", "linen-shirt", "", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProductAddVariant(t *testing.T) {
	p := newTestProduct(t)

	v, err := p.AddVariant("Blue", "M", "LS-BLU-M", 10)
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)
	assert.Equal(t, 10, v.Stock)

	t.Run("duplicate combination rejected", func(t *testing.T) {
		_, err := p.AddVariant("Blue", "M", "LS-BLU-M-2", 5)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("duplicate detection is case-insensitive", func(t *testing.T) {
		_, err := p.AddVariant("blue", "m", "LS-BLU-M-3", 5)
		assert.Error(t, err)
	})

	t.Run("distinct size allowed", func(t *testing.T) {
		_, err := p.AddVariant("Blue", "L", "LS-BLU-L", 3)
		assert.NoError(t, err)
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		_, err := p.AddVariant("Red", "M", "LS-RED-M", -1)
		assert.Error(t, err)
	})
}

func TestVariantDebitCredit(t *testing.T) {
	p := newTestProduct(t)
	v, err := p.AddVariant("Blue", "M", "LS-BLU-M", 5)
	require.NoError(t, err)

	require.NoError(t, v.Debit(3))
	assert.Equal(t, 2, v.Stock)

	t.Run("debit beyond stock fails without change", func(t *testing.T) {
		err := v.Debit(3)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 2, v.Stock)
	})

	t.Run("credit restores stock", func(t *testing.T) {
		require.NoError(t, v.Credit(3))
		assert.Equal(t, 5, v.Stock)
	})

	t.Run("non-positive quantities rejected", func(t *testing.T) {
		assert.Error(t, v.Debit(0))
		assert.Error(t, v.Credit(-1))
	})
}

func TestProductStockLookups(t *testing.T) {
	p := newTestProduct(t)
	_, err := p.AddVariant("Blue", "M", "LS-BLU-M", 5)
	require.NoError(t, err)
	_, err = p.AddVariant("Blue", "L", "LS-BLU-L", 2)
	require.NoError(t, err)
	_, err = p.AddVariant("Red", "M", "LS-RED-M", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, p.StockFor("blue", "m"))
	assert.Equal(t, 0, p.StockFor("Green", "M"))
	assert.Equal(t, 7, p.TotalStock())
	assert.Equal(t, []string{"Blue", "Red"}, p.Colors())
	assert.Equal(t, []string{"M", "L"}, p.Sizes())
}

func TestProductRemoveVariant(t *testing.T) {
	p := newTestProduct(t)
	v, err := p.AddVariant("Blue", "M", "LS-BLU-M", 5)
	require.NoError(t, err)

	require.NoError(t, p.RemoveVariant(v.ID))
	assert.Nil(t, p.VariantFor("Blue", "M"))
	assert.Error(t, p.RemoveVariant(v.ID))
}
