package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/catalog"
	"github.com/mddstore/backend/internal/application/ordering"
	"github.com/mddstore/backend/internal/application/report"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
)

const defaultReportDays = 30

// AdminHandler exposes order management, analytics and inventory views
type AdminHandler struct {
	BaseHandler
	orders  *ordering.Service
	reports *report.Service
	catalog *catalog.Service
}

// NewAdminHandler creates the handler
func NewAdminHandler(orders *ordering.Service, reports *report.Service, catalogSvc *catalog.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		orders:      orders,
		reports:     reports,
		catalog:     catalogSvc,
	}
}

// ListOrders handles GET /api/admin/orders with an optional status filter
func (h *AdminHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := order.Status(c.Query("status"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), page, pageSize, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKPaged(dto.NewOrderViews(orders), page, pageSize, total))
}

type updateStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	target := order.Status(req.Status)
	if !target.IsValid() {
		h.HandleError(c, shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown order status: %s", req.Status))
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, target, req.TrackingNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderView(o)))
}

// Dashboard handles GET /api/admin/reports/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	from, to, err := reportPeriod(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewDashboardView(dashboard)))
}

// SalesSummary handles GET /api/admin/reports/summary
func (h *AdminHandler) SalesSummary(c *gin.Context) {
	from, to, err := reportPeriod(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewSalesSummaryView(summary)))
}

// LowStock handles GET /api/admin/inventory/low-stock
func (h *AdminHandler) LowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "5"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Threshold must be a number"))
		return
	}

	variants, err := h.catalog.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]dto.LowStockView, 0, len(variants))
	for _, v := range variants {
		views = append(views, dto.LowStockView{
			VariantID: v.ID.String(),
			ProductID: v.ProductID.String(),
			Color:     v.Color,
			Size:      v.Size,
			SKU:       v.SKU,
			Stock:     v.Stock,
		})
	}
	c.JSON(http.StatusOK, dto.OK(views))
}

// reportPeriod parses from/to query dates, defaulting to the last 30 days.
func reportPeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -defaultReportDays)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "to must be YYYY-MM-DD")
		}
		// Inclusive end date
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
