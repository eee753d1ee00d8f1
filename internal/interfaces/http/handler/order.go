package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/ordering"
	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
	"github.com/mddstore/backend/internal/interfaces/http/middleware"
)

// OrderHandler exposes checkout and the customer's order views
type OrderHandler struct {
	BaseHandler
	orders *ordering.Service
}

// NewOrderHandler creates the handler
func NewOrderHandler(svc *ordering.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(logger), orders: svc}
}

// Create handles POST /api/orders: checkout from the cart
func (h *OrderHandler) Create(c *gin.Context) {
	var req ordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.CheckoutView{
		Order:          dto.NewOrderView(result.Order),
		GatewayOrderID: result.GatewayOrderID,
		AmountMinor:    result.AmountMinor,
		Currency:       result.Currency,
	}))
}

// List handles GET /api/orders: the caller's own orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.orders.ListUserOrders(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKPaged(dto.NewOrderViews(orders), page, pageSize, total))
}

// Get handles GET /api/orders/:id. The path parameter accepts either the
// order's UUID or its human-readable order number.
func (h *OrderHandler) Get(c *gin.Context) {
	param := c.Param("id")

	var o *order.Order
	if id, err := uuid.Parse(param); err == nil {
		o, err = h.orders.GetOrder(c.Request.Context(), middleware.UserID(c), middleware.IsAdmin(c), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	} else if order.IsNumber(param) {
		o, err = h.orders.GetOrderByNumber(c.Request.Context(), middleware.UserID(c), middleware.IsAdmin(c), param)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	} else {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderView(o)))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	o, err := h.orders.CancelOrder(c.Request.Context(), middleware.UserID(c), middleware.IsAdmin(c), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderView(o)))
}
