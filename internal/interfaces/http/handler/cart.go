package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/cart"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
	"github.com/mddstore/backend/internal/interfaces/http/middleware"
)

// CartHandler exposes the authenticated user's cart
type CartHandler struct {
	BaseHandler
	cart *cart.Service
}

// NewCartHandler creates the handler
func NewCartHandler(svc *cart.Service, logger *zap.Logger) *CartHandler {
	return &CartHandler{BaseHandler: NewBaseHandler(logger), cart: svc}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	userCart, err := h.cart.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewCartView(userCart)))
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}

	userCart, err := h.cart.AddItem(c.Request.Context(), middleware.UserID(c), productID, req.Color, req.Size, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewCartView(userCart)))
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateItem handles PUT /api/cart/items/:itemId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid item id"))
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	userCart, err := h.cart.UpdateItem(c.Request.Context(), middleware.UserID(c), itemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewCartView(userCart)))
}

// RemoveItem handles DELETE /api/cart/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid item id"))
		return
	}

	userCart, err := h.cart.RemoveItem(c.Request.Context(), middleware.UserID(c), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewCartView(userCart)))
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"cleared": true}))
}
