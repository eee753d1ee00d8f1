package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, page, pageSize, search, activeOnly)
	var products []catalog.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]catalog.Product)
	}
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) DebitStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error {
	return m.Called(ctx, productID, color, size, quantity).Error(0)
}

func (m *mockProductRepo) CreditStock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error {
	return m.Called(ctx, productID, color, size, quantity).Error(0)
}

func (m *mockProductRepo) LowStockVariants(ctx context.Context, threshold int) ([]catalog.Variant, error) {
	args := m.Called(ctx, threshold)
	var variants []catalog.Variant
	if args.Get(0) != nil {
		variants = args.Get(0).([]catalog.Variant)
	}
	return variants, args.Error(1)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) Create(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Save(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// fakeGateway returns canned answers and records calls
type fakeGateway struct {
	createdOrders int
	failCreate    bool
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ int64, _, _ string) (string, error) {
	if g.failCreate {
		return "", context.DeadlineExceeded
	}
	g.createdOrders++
	return "order_gw_123", nil
}

func (g *fakeGateway) VerifySignature(_, _, _ string) bool { return true }

func (g *fakeGateway) VerifyWebhookSignature(_ []byte, _ string) bool { return true }

// spyNotifier counts lifecycle events synchronously
type spyNotifier struct {
	placed    int
	confirmed int
	cancelled int
	changed   int
}

func (n *spyNotifier) OrderPlaced(*identity.User, *order.Order)        { n.placed++ }
func (n *spyNotifier) OrderConfirmed(*identity.User, *order.Order)     { n.confirmed++ }
func (n *spyNotifier) OrderCancelled(*identity.User, *order.Order)     { n.cancelled++ }
func (n *spyNotifier) OrderStatusChanged(*identity.User, *order.Order) { n.changed++ }
