package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/application/catalog"
	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
)

const maxImageSize = 5 << 20 // 5 MiB

// ProductHandler exposes the public catalog and admin product management
type ProductHandler struct {
	BaseHandler
	catalog *catalog.Service
}

// NewProductHandler creates the handler
func NewProductHandler(svc *catalog.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(logger), catalog: svc}
}

// List handles GET /api/products. Public callers only see active products.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")

	products, total, err := h.catalog.ListProducts(c.Request.Context(), page, pageSize, search, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKPaged(dto.NewProductViews(products), page, pageSize, total))
}

// GetBySlug handles GET /api/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !product.Active {
		h.HandleError(c, shared.NewDomainError("NOT_FOUND", "Product not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewProductView(product)))
}

// AdminList handles GET /api/admin/products, including inactive products
func (h *ProductHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")

	products, total, err := h.catalog.ListProducts(c.Request.Context(), page, pageSize, search, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKPaged(dto.NewProductViews(products), page, pageSize, total))
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewProductView(product)))
}

// Update handles PUT /api/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}
	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewProductView(product)))
}

// Delete handles DELETE /api/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"deleted": true}))
}

// AddVariant handles POST /api/admin/products/:id/variants
func (h *ProductHandler) AddVariant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}
	var req catalog.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	product, err := h.catalog.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewProductView(product)))
}

// RemoveVariant handles DELETE /api/admin/products/:id/variants/:variantId
func (h *ProductHandler) RemoveVariant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid variant id"))
		return
	}
	if err := h.catalog.RemoveVariant(c.Request.Context(), id, variantID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"deleted": true}))
}

type restockRequest struct {
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Restock handles POST /api/admin/products/:id/restock
func (h *ProductHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.catalog.Restock(c.Request.Context(), id, req.Color, req.Size, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"restocked": true}))
}

// UploadImage handles POST /api/admin/products/:id/image (multipart)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid product id"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "An image file is required"))
		return
	}
	if file.Size > maxImageSize {
		h.HandleError(c, shared.NewDomainError("VALIDATION_ERROR", "Image must be 5 MB or smaller"))
		return
	}

	src, err := file.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer src.Close()

	product, err := h.catalog.UploadImage(c.Request.Context(), id, file.Filename,
		file.Header.Get("Content-Type"), src)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewProductView(product)))
}
