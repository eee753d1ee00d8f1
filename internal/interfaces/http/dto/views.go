package dto

import (
	"time"

	"github.com/shopspring/decimal"

	appreport "github.com/mddstore/backend/internal/application/report"
	"github.com/mddstore/backend/internal/domain/cart"
	"github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/report"
	"github.com/mddstore/backend/internal/domain/shared/valueobject"
)

// UserView is the public shape of an account
type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func NewUserView(u *identity.User) UserView {
	return UserView{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

// AuthView pairs a user with their access token
type AuthView struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// VariantView is one purchasable combination
type VariantView struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

// ProductView is the public shape of a product
type ProductView struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	ImageURL       string           `json:"image_url,omitempty"`
	Active         bool             `json:"active"`
	Colors         []string         `json:"colors"`
	Sizes          []string         `json:"sizes"`
	TotalStock     int              `json:"total_stock"`
	Variants       []VariantView    `json:"variants"`
}

func NewProductView(p *catalog.Product) ProductView {
	view := ProductView{
		ID:             p.ID.String(),
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		ImageURL:       p.ImageURL,
		Active:         p.Active,
		Colors:         p.Colors(),
		Sizes:          p.Sizes(),
		TotalStock:     p.TotalStock(),
		Variants:       make([]VariantView, 0, len(p.Variants)),
	}
	for _, v := range p.Variants {
		view.Variants = append(view.Variants, VariantView{
			ID:    v.ID.String(),
			Color: v.Color,
			Size:  v.Size,
			SKU:   v.SKU,
			Stock: v.Stock,
		})
	}
	return view
}

func NewProductViews(products []catalog.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for i := range products {
		out = append(out, NewProductView(&products[i]))
	}
	return out
}

// CartItemView is one cart line
type CartItemView struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Quantity   int             `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	Amount     decimal.Decimal `json:"amount"`
}

// CartView is the user's cart with derived totals
type CartView struct {
	ID        string          `json:"id"`
	Items     []CartItemView  `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func NewCartView(c *cart.Cart) CartView {
	view := CartView{
		ID:        c.ID.String(),
		Items:     make([]CartItemView, 0, len(c.Items)),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
	for i := range c.Items {
		item := &c.Items[i]
		view.Items = append(view.Items, CartItemView{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Color:      item.Color,
			Size:       item.Size,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
			Amount:     item.Amount(),
		})
	}
	return view
}

// AddressView is the JSON shape of a shipping or billing address
type AddressView struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func newAddressView(a valueobject.Address) AddressView {
	return AddressView{
		Name:       a.Name(),
		Phone:      a.Phone(),
		Line1:      a.Line1(),
		Line2:      a.Line2(),
		City:       a.City(),
		State:      a.State(),
		PostalCode: a.PostalCode(),
	}
}

// OrderItemView is one priced line snapshot
type OrderItemView struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	SKU          string          `json:"sku"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
}

// PaymentView is the payment leg of an order
type PaymentView struct {
	Method           string     `json:"method"`
	Status           string     `json:"status"`
	GatewayOrderID   string     `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

// OrderView is the full order
type OrderView struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	Items           []OrderItemView `json:"items"`
	ShippingAddress AddressView     `json:"shipping_address"`
	BillingAddress  AddressView     `json:"billing_address"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Payment         PaymentView     `json:"payment"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Cancellable     bool            `json:"cancellable"`
	CreatedAt       time.Time       `json:"created_at"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
}

func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:              o.ID.String(),
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		Items:           make([]OrderItemView, 0, len(o.Items)),
		ShippingAddress: newAddressView(o.ShippingAddress),
		BillingAddress:  newAddressView(o.BillingAddress),
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		TaxAmount:       o.TaxAmount,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Payment: PaymentView{
			Method:           string(o.Payment.Method),
			Status:           string(o.Payment.Status),
			GatewayOrderID:   o.Payment.GatewayOrderID,
			GatewayPaymentID: o.Payment.GatewayPaymentID,
			PaidAt:           o.Payment.PaidAt,
		},
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		Cancellable:    o.IsCancellable(),
		CreatedAt:      o.CreatedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			SKU:          item.SKU,
			Color:        item.Color,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Amount:       item.Amount,
		})
	}
	return view
}

func NewOrderViews(orders []order.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderView(&orders[i]))
	}
	return out
}

// CheckoutView is the checkout response; gateway fields are present for
// razorpay orders only
type CheckoutView struct {
	Order          OrderView `json:"order"`
	GatewayOrderID string    `json:"gateway_order_id,omitempty"`
	AmountMinor    int64     `json:"amount_minor,omitempty"`
	Currency       string    `json:"currency,omitempty"`
}

// LowStockView is one variant below the restock threshold
type LowStockView struct {
	VariantID string `json:"variant_id"`
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
}

// SalesSummaryView is the headline revenue block of the admin dashboard
type SalesSummaryView struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	OrderCount      int64           `json:"order_count"`
	UnitsSold       int64           `json:"units_sold"`
	AverageOrderVal decimal.Decimal `json:"average_order_value"`
}

// StatusBreakdownView counts orders per lifecycle status
type StatusBreakdownView struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopProductView ranks products by units sold
type TopProductView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DailySalesView is one day's revenue bucket
type DailySalesView struct {
	Day        string          `json:"day"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// DashboardView bundles everything the admin landing page shows
type DashboardView struct {
	Summary     SalesSummaryView      `json:"summary"`
	ByStatus    []StatusBreakdownView `json:"by_status"`
	TopProducts []TopProductView      `json:"top_products"`
	DailyTrend  []DailySalesView      `json:"daily_trend"`
}

func NewSalesSummaryView(s *report.SalesSummary) SalesSummaryView {
	return SalesSummaryView{
		From:            s.From,
		To:              s.To,
		TotalRevenue:    s.TotalRevenue,
		OrderCount:      s.OrderCount,
		UnitsSold:       s.UnitsSold,
		AverageOrderVal: s.AverageOrderVal,
	}
}

func NewDashboardView(d *appreport.Dashboard) DashboardView {
	view := DashboardView{
		Summary:     NewSalesSummaryView(d.Summary),
		ByStatus:    make([]StatusBreakdownView, 0, len(d.ByStatus)),
		TopProducts: make([]TopProductView, 0, len(d.TopProducts)),
		DailyTrend:  make([]DailySalesView, 0, len(d.DailyTrend)),
	}
	for _, b := range d.ByStatus {
		view.ByStatus = append(view.ByStatus, StatusBreakdownView{Status: b.Status, Count: b.Count})
	}
	for _, p := range d.TopProducts {
		view.TopProducts = append(view.TopProducts, TopProductView{
			ProductID:   p.ProductID.String(),
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			Revenue:     p.Revenue,
		})
	}
	for _, day := range d.DailyTrend {
		view.DailyTrend = append(view.DailyTrend, DailySalesView{
			Day:        day.Day.Format("2006-01-02"),
			Revenue:    day.Revenue,
			OrderCount: day.OrderCount,
		})
	}
	return view
}
