package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/report"
)

// excludedStatuses never count toward revenue
var excludedStatuses = []string{"cancelled", "refunded"}

// paidPaymentStatus gates revenue figures: only orders whose payment
// completed count. COD orders join once delivery settles them.
const paidPaymentStatus = "completed"

// SalesReportRepository reads order aggregates for the admin dashboard
type SalesReportRepository struct {
	db *gorm.DB
}

// NewSalesReportRepository creates the repository
func NewSalesReportRepository(db *gorm.DB) *SalesReportRepository {
	return &SalesReportRepository{db: db}
}

func (r *SalesReportRepository) Summary(ctx context.Context, from, to time.Time) (*report.SalesSummary, error) {
	var row struct {
		Revenue decimal.Decimal
		Orders  int64
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status NOT IN ?", excludedStatuses).
		Where("payment_status = ?", paidPaymentStatus).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var units int64
	err = r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Where("orders.status NOT IN ?", excludedStatuses).
		Where("orders.payment_status = ?", paidPaymentStatus).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&units).Error
	if err != nil {
		return nil, err
	}

	summary := &report.SalesSummary{
		From:         from,
		To:           to,
		TotalRevenue: row.Revenue,
		OrderCount:   row.Orders,
		UnitsSold:    units,
	}
	if row.Orders > 0 {
		summary.AverageOrderVal = row.Revenue.Div(decimal.NewFromInt(row.Orders)).Round(2)
	} else {
		summary.AverageOrderVal = decimal.Zero
	}
	return summary, nil
}

func (r *SalesReportRepository) ByStatus(ctx context.Context) ([]report.StatusBreakdown, error) {
	var rows []report.StatusBreakdown
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SalesReportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []struct {
		ProductID   uuid.UUID
		ProductName string
		UnitsSold   int64
		Revenue     decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Where("orders.status NOT IN ?", excludedStatuses).
		Where("orders.payment_status = ?", paidPaymentStatus).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS units_sold, COALESCE(SUM(order_items.amount), 0) AS revenue").
		Group("order_items.product_id, order_items.product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.TopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			UnitsSold:   row.UnitsSold,
			Revenue:     row.Revenue,
		})
	}
	return out, nil
}

func (r *SalesReportRepository) DailyTrend(ctx context.Context, from, to time.Time) ([]report.DailySales, error) {
	var rows []struct {
		Day        string
		Revenue    decimal.Decimal
		OrderCount int64
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("DATE(created_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status NOT IN ?", excludedStatuses).
		Where("payment_status = ?", paidPaymentStatus).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.DailySales, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			continue
		}
		out = append(out, report.DailySales{
			Day:        day,
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
		})
	}
	return out, nil
}
