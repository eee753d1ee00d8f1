package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/payment"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
	"github.com/mddstore/backend/internal/interfaces/http/middleware"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// PaymentHandler exposes payment verification, COD confirmation and the
// gateway webhook
type PaymentHandler struct {
	BaseHandler
	payments *payment.Service
}

// NewPaymentHandler creates the handler
func NewPaymentHandler(svc *payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{BaseHandler: NewBaseHandler(logger), payments: svc}
}

// CreateIntent handles POST /api/orders/:id/payment/intent: (re)creates the
// gateway order for a checkout that is still awaiting payment
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}

	result, err := h.payments.CreateIntent(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.CheckoutView{
		Order:          dto.NewOrderView(result.Order),
		GatewayOrderID: result.GatewayOrderID,
		AmountMinor:    result.AmountMinor,
		Currency:       result.Currency,
	}))
}

// Verify handles POST /api/orders/:id/payment/verify: the client-side
// callback after a gateway checkout
func (h *PaymentHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}
	var req payment.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	o, err := h.payments.Verify(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderView(o)))
}

// ConfirmCOD handles POST /api/orders/:id/cod/confirm
func (h *PaymentHandler) ConfirmCOD(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid order id"))
		return
	}

	o, err := h.payments.ConfirmCOD(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderView(o)))
}

// Webhook handles POST /api/webhooks/razorpay. The signature is computed
// over the raw body, so the body must be read before any JSON binding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Unreadable webhook body"))
		return
	}

	err = h.payments.HandleWebhook(c.Request.Context(), body,
		c.GetHeader("X-Razorpay-Signature"),
		c.GetHeader("X-Razorpay-Event-Id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"received": true}))
}
