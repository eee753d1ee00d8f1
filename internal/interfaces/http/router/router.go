package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/infrastructure/auth"
	"github.com/mddstore/backend/internal/infrastructure/logger"
	"github.com/mddstore/backend/internal/interfaces/http/handler"
	"github.com/mddstore/backend/internal/interfaces/http/middleware"
)

// Handlers collects everything the router mounts
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
	Admin   *handler.AdminHandler
	System  *handler.SystemHandler
}

// New assembles the gin engine with all routes and middleware
func New(h Handlers, jwt *auth.JWTManager, log *zap.Logger, corsOrigin string) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinRecovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(corsOrigin))

	engine.GET("/healthz", h.System.Healthz)
	engine.GET("/readyz", h.System.Readyz)

	api := engine.Group("/api")

	// Public
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/products", h.Product.List)
	api.GET("/products/:slug", h.Product.GetBySlug)

	// Gateway webhook authenticates by signature, not by bearer token
	api.POST("/webhooks/razorpay", h.Payment.Webhook)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.Authenticate(jwt))
	{
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)

		authed.GET("/cart", h.Cart.Get)
		authed.POST("/cart/items", h.Cart.AddItem)
		authed.PUT("/cart/items/:itemId", h.Cart.UpdateItem)
		authed.DELETE("/cart/items/:itemId", h.Cart.RemoveItem)
		authed.DELETE("/cart", h.Cart.Clear)

		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.List)
		authed.GET("/orders/:id", h.Order.Get)
		authed.POST("/orders/:id/cancel", h.Order.Cancel)
		authed.POST("/orders/:id/payment/intent", h.Payment.CreateIntent)
		authed.POST("/orders/:id/payment/verify", h.Payment.Verify)
		authed.POST("/orders/:id/cod/confirm", h.Payment.ConfirmCOD)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(jwt), middleware.RequireAdmin())
	{
		admin.GET("/products", h.Product.AdminList)
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/variants", h.Product.AddVariant)
		admin.DELETE("/products/:id/variants/:variantId", h.Product.RemoveVariant)
		admin.POST("/products/:id/restock", h.Product.Restock)
		admin.POST("/products/:id/image", h.Product.UploadImage)

		admin.GET("/orders", h.Admin.ListOrders)
		admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)

		admin.GET("/reports/dashboard", h.Admin.Dashboard)
		admin.GET("/reports/summary", h.Admin.SalesSummary)
		admin.GET("/inventory/low-stock", h.Admin.LowStock)
	}

	return engine
}
