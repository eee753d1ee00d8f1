package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/domain/report"
	"github.com/mddstore/backend/internal/domain/shared"
)

// Dashboard bundles everything the admin landing page shows
type Dashboard struct {
	Summary     *report.SalesSummary
	ByStatus    []report.StatusBreakdown
	TopProducts []report.TopProduct
	DailyTrend  []report.DailySales
}

// Service reads sales analytics for the admin dashboard
type Service struct {
	reports report.SalesReportRepository
	logger  *zap.Logger
}

// NewService wires the reporting reads
func NewService(reports report.SalesReportRepository, logger *zap.Logger) *Service {
	return &Service{reports: reports, logger: logger}
}

// Dashboard assembles the full admin overview for a period
func (s *Service) Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Report period end must be after its start")
	}

	summary, err := s.reports.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reports.ByStatus(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.reports.TopProducts(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}
	trend, err := s.reports.DailyTrend(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary:     summary,
		ByStatus:    byStatus,
		TopProducts: top,
		DailyTrend:  trend,
	}, nil
}

// Summary returns revenue and order counts for a period
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*report.SalesSummary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Report period end must be after its start")
	}
	return s.reports.Summary(ctx, from, to)
}
