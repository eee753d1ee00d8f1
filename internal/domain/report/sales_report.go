package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary aggregates revenue and order counts over a period. Only
// orders whose payment completed count; cancelled and refunded orders are
// excluded.
type SalesSummary struct {
	From            time.Time
	To              time.Time
	TotalRevenue    decimal.Decimal
	OrderCount      int64
	UnitsSold       int64
	AverageOrderVal decimal.Decimal
}

// StatusBreakdown counts orders per lifecycle status
type StatusBreakdown struct {
	Status string
	Count  int64
}

// TopProduct ranks products by units sold over a period
type TopProduct struct {
	ProductID   uuid.UUID
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// DailySales is one day's revenue bucket for trend charts
type DailySales struct {
	Day        time.Time
	Revenue    decimal.Decimal
	OrderCount int64
}

// SalesReportRepository reads aggregated order data for the admin dashboard
type SalesReportRepository interface {
	Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	ByStatus(ctx context.Context) ([]StatusBreakdown, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	DailyTrend(ctx context.Context, from, to time.Time) ([]DailySales, error)
}
