package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

var dbSeq int

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Linen Shirt", "linen-shirt", "Breathable summer shirt", decimal.NewFromInt(899))
	require.NoError(t, err)
	_, err = p.AddVariant("Blue", "M", "LS-BLU-M", 10)
	require.NoError(t, err)
	_, err = p.AddVariant("Blue", "L", "LS-BLU-L", 2)
	require.NoError(t, err)
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func seedAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)
	return addr
}

func TestProductRepositoryRoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	p := seedProduct(t, db)

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "linen-shirt", got.Slug)
	assert.Len(t, got.Variants, 2)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(899)))
	assert.Equal(t, 10, got.StockFor("Blue", "M"))

	bySlug, err := repo.FindBySlug(context.Background(), "linen-shirt")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	_, err = repo.FindByID(context.Background(), uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestProductRepositoryDuplicateSlug(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db)

	dupe, err := catalog.NewProduct("Other Shirt", "linen-shirt", "", decimal.NewFromInt(500))
	require.NoError(t, err)
	err = repo.Create(context.Background(), dupe)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestProductRepositorySaveReplacesVariants(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	p := seedProduct(t, db)

	_, err := p.AddVariant("Red", "M", "LS-RED-M", 4)
	require.NoError(t, err)
	require.NoError(t, p.RemoveVariant(p.VariantFor("Blue", "L").ID))
	require.NoError(t, repo.Save(context.Background(), p))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variants, 2)
	assert.Nil(t, got.VariantFor("Blue", "L"))
	assert.Equal(t, 4, got.StockFor("Red", "M"))
}

func TestProductRepositoryList(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db)

	inactive, err := catalog.NewProduct("Archived Kurta", "archived-kurta", "", decimal.NewFromInt(1200))
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, repo.Create(context.Background(), inactive))

	all, total, err := repo.List(context.Background(), 1, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	active, total, err := repo.List(context.Background(), 1, 20, "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "linen-shirt", active[0].Slug)

	found, total, err := repo.List(context.Background(), 1, 20, "breathable", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "linen-shirt", found[0].Slug)
}

func TestDebitStock(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	p := seedProduct(t, db)

	require.NoError(t, repo.DebitStock(context.Background(), p.ID, "blue", "m", 4))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.StockFor("Blue", "M"))

	t.Run("insufficient stock leaves ledger untouched", func(t *testing.T) {
		err := repo.DebitStock(context.Background(), p.ID, "Blue", "M", 7)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

		got, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, got.StockFor("Blue", "M"))
	})

	t.Run("unknown variant", func(t *testing.T) {
		err := repo.DebitStock(context.Background(), p.ID, "Green", "M", 1)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("credit restores", func(t *testing.T) {
		require.NoError(t, repo.CreditStock(context.Background(), p.ID, "Blue", "M", 4))
		got, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.StockFor("Blue", "M"))
	})
}

func TestLowStockVariants(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db)

	low, err := repo.LowStockVariants(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "LS-BLU-L", low[0].SKU)
}

func TestCartRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewCartRepository(db)
	p := seedProduct(t, db)
	userID := uuid.New()

	c, err := cart.NewCart(userID)
	require.NoError(t, err)
	_, err = c.AddItem(p.ID, "Blue", "M", 2, p.Price)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))

	got, err := repo.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.ItemCount())
	assert.True(t, got.Subtotal().Equal(decimal.NewFromInt(1798)))

	t.Run("save replaces lines", func(t *testing.T) {
		require.NoError(t, got.UpdateItemQuantity(got.Items[0].ID, 5))
		require.NoError(t, repo.Save(context.Background(), got))

		reloaded, err := repo.FindByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 5, reloaded.ItemCount())
	})

	t.Run("one cart per user", func(t *testing.T) {
		second, err := cart.NewCart(userID)
		require.NoError(t, err)
		err = repo.Create(context.Background(), second)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("delete by user", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUser(context.Background(), userID))
		_, err := repo.FindByUser(context.Background(), userID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func seedOrder(t *testing.T, db *gorm.DB, number string, userID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(number, userID, []order.Item{{
		ProductID:   uuid.New(),
		ProductName: "Linen Shirt",
		SKU:         "LS-BLU-M",
		Color:       "Blue",
		Size:        "M",
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(899),
	}}, seedAddress(t), valueobject.Address{}, order.MethodRazorpay)
	require.NoError(t, err)
	o.ApplyCharges(decimal.NewFromInt(100), decimal.NewFromInt(324), decimal.Zero)
	require.NoError(t, NewOrderRepository(db).Create(context.Background(), o))
	return o
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	userID := uuid.New()
	o := seedOrder(t, db, "MDD25080001", userID)

	got, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "MDD25080001", got.OrderNumber)
	assert.Equal(t, order.StatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(2222)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Priya", got.ShippingAddress.Name())
	assert.True(t, got.BillingAddress.Equals(got.ShippingAddress))

	byNumber, err := repo.FindByNumber(context.Background(), "MDD25080001")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)
}

func TestOrderRepositoryUniqueNumber(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, "MDD25080001", uuid.New())

	dupe, err := order.NewOrder("MDD25080001", uuid.New(), []order.Item{{
		ProductID: uuid.New(),
		Color:     "Blue",
		Size:      "M",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(899),
	}}, seedAddress(t), valueobject.Address{}, order.MethodCOD)
	require.NoError(t, err)

	err = repo.Create(context.Background(), dupe)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestOrderRepositorySaveAndGatewayLookup(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	o := seedOrder(t, db, "MDD25080001", uuid.New())

	require.NoError(t, o.AttachGatewayOrder("order_gw_123"))
	require.NoError(t, repo.Save(context.Background(), o))

	got, err := repo.FindByGatewayOrderID(context.Background(), "order_gw_123")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, order.StatusPaymentPending, got.Status)
	require.Len(t, got.Items, 1, "save must not drop line snapshots")

	t.Run("per-line debit flag round-trips", func(t *testing.T) {
		require.NoError(t, o.MarkPaid("pay_1"))
		o.MarkItemStockDebited(o.Items[0].ID)
		require.NoError(t, repo.Save(context.Background(), o))

		got, err := repo.FindByID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.True(t, got.StockDebited)
		require.Len(t, got.Items, 1)
		assert.True(t, got.Items[0].StockDebited)
	})
}

func TestOrderRepositoryNumberQueries(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, "MDD25080001", uuid.New())
	seedOrder(t, db, "MDD25080007", uuid.New())
	seedOrder(t, db, "MDD25070042", uuid.New())

	last, err := repo.LastNumberWithPrefix(context.Background(), "MDD2508")
	require.NoError(t, err)
	assert.Equal(t, "MDD25080007", last)

	last, err = repo.LastNumberWithPrefix(context.Background(), "MDD2509")
	require.NoError(t, err)
	assert.Equal(t, "", last)

	exists, err := repo.ExistsByNumber(context.Background(), "MDD25070042")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(context.Background(), "MDD25070043")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrderRepositoryLists(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	userID := uuid.New()
	seedOrder(t, db, "MDD25080001", userID)
	seedOrder(t, db, "MDD25080002", userID)
	other := seedOrder(t, db, "MDD25080003", uuid.New())

	mine, total, err := repo.FindByUser(context.Background(), userID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	require.NoError(t, other.Cancel("test"))
	require.NoError(t, repo.Save(context.Background(), other))

	cancelled, total, err := repo.FindAll(context.Background(), 1, 20, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "MDD25080003", cancelled[0].OrderNumber)
}

func TestUserRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	u, err := identity.NewUser("Priya", "priya@example.com", "$2a$10$hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	got, err := repo.FindByEmail(context.Background(), "  PRIYA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	dupe, err := identity.NewUser("Imposter", "priya@example.com", "$2a$10$other")
	require.NoError(t, err)
	err = repo.Create(context.Background(), dupe)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestSalesReportRepository(t *testing.T) {
	db := setupDB(t)
	reports := NewSalesReportRepository(db)
	orderRepo := NewOrderRepository(db)

	paid := seedOrder(t, db, "MDD25080001", uuid.New())
	require.NoError(t, paid.AttachGatewayOrder("order_gw_1"))
	require.NoError(t, paid.MarkPaid("pay_1"))
	require.NoError(t, orderRepo.Save(context.Background(), paid))

	seedOrder(t, db, "MDD25080002", uuid.New())

	cancelled := seedOrder(t, db, "MDD25080003", uuid.New())
	require.NoError(t, cancelled.Cancel("test"))
	require.NoError(t, orderRepo.Save(context.Background(), cancelled))

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	summary, err := reports.Summary(context.Background(), from, to)
	require.NoError(t, err)
	// Only the paid order counts toward revenue; the unpaid pending
	// checkout and the cancelled order are excluded.
	assert.Equal(t, int64(1), summary.OrderCount)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(2222)), "got %s", summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.UnitsSold)
	assert.True(t, summary.AverageOrderVal.Equal(decimal.NewFromInt(2222)))

	byStatus, err := reports.ByStatus(context.Background())
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, row := range byStatus {
		counts[row.Status] = row.Count
	}
	assert.Equal(t, int64(1), counts["cancelled"])
	assert.Equal(t, int64(1), counts["confirmed"])
	assert.Equal(t, int64(1), counts["pending"])

	top, err := reports.TopProducts(context.Background(), from, to, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(2), top[0].UnitsSold)

	trend, err := reports.DailyTrend(context.Background(), from, to)
	require.NoError(t, err)
	require.NotEmpty(t, trend)
	assert.Equal(t, int64(1), trend[len(trend)-1].OrderCount)
}
