package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogdomain "github.com/mddstore/backend/internal/domain/catalog"
	"github.com/mddstore/backend/internal/domain/shared"
)

// VariantInput describes one variant in a create/update payload
type VariantInput struct {
	Color string `json:"color" binding:"required"`
	Size  string `json:"size" binding:"required"`
	SKU   string `json:"sku" binding:"required"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// CreateProductRequest is the admin payload for a new product
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required"`
	Slug           string           `json:"slug" binding:"required"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price" binding:"required"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Variants       []VariantInput   `json:"variants" binding:"required,min=1,dive"`
}

// UpdateProductRequest carries partial product updates
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Active         *bool            `json:"active"`
}

// Service implements catalog management and the public product views
type Service struct {
	products catalogdomain.ProductRepository
	storage  Storage
	logger   *zap.Logger
}

// NewService wires the catalog workflow
func NewService(products catalogdomain.ProductRepository, storage Storage, logger *zap.Logger) *Service {
	return &Service{products: products, storage: storage, logger: logger}
}

// CreateProduct creates a product with its initial variants
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*catalogdomain.Product, error) {
	product, err := catalogdomain.NewProduct(req.Name, req.Slug, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	if req.CompareAtPrice != nil {
		if err := product.SetCompareAtPrice(*req.CompareAtPrice); err != nil {
			return nil, err
		}
	}
	for _, v := range req.Variants {
		if _, err := product.AddVariant(v.Color, v.Size, v.SKU, v.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))
	return product, nil
}

// UpdateProduct applies partial updates to a product
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*catalogdomain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		if err := product.SetCompareAtPrice(*req.CompareAtPrice); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	product.Touch()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and its stored image
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if key := imageKeyFromURL(product.ImageURL); key != "" {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete product image",
				zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// AddVariant adds a new color/size combination to a product
func (s *Service) AddVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*catalogdomain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := product.AddVariant(in.Color, in.Size, in.SKU, in.Stock); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// RemoveVariant deletes a color/size combination
func (s *Service) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.RemoveVariant(variantID); err != nil {
		return err
	}
	return s.products.Save(ctx, product)
}

// Restock credits received inventory to a variant
func (s *Service) Restock(ctx context.Context, productID uuid.UUID, color, size string, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Restock quantity must be positive")
	}
	return s.products.CreditStock(ctx, productID, color, size, quantity)
}

// UploadImage stores a product image and records its URL
func (s *Service) UploadImage(ctx context.Context, productID uuid.UUID, filename, contentType string, body io.Reader) (*catalogdomain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), path.Ext(filename))
	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		s.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("UPSTREAM_ERROR", "Image upload failed")
	}

	product.SetImageURL(url)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct fetches one product by id
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*catalogdomain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// GetProductBySlug fetches one product by its URL slug
func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*catalogdomain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

// ListProducts pages through the catalog. Public callers see active
// products only.
func (s *Service) ListProducts(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]catalogdomain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.products.List(ctx, page, pageSize, search, activeOnly)
}

// LowStock lists variants running out, for the admin dashboard
func (s *Service) LowStock(ctx context.Context, threshold int) ([]catalogdomain.Variant, error) {
	if threshold < 0 {
		threshold = 0
	}
	return s.products.LowStockVariants(ctx, threshold)
}

// imageKeyFromURL recovers the storage key from a stored image URL. Returns
// "" when the URL does not look like one of ours.
func imageKeyFromURL(url string) string {
	idx := strings.Index(url, "/products/")
	if idx < 0 {
		return ""
	}
	return url[idx+1:]
}
