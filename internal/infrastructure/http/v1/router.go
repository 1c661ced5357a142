// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/inventory"
	"kardex/internal/domain/products"
	"kardex/internal/domain/purchases"
	"kardex/internal/domain/replenishments"
	"kardex/internal/domain/reports"
	"kardex/internal/domain/sales"
	"kardex/internal/infrastructure/http/v1/handlers"
	"kardex/internal/infrastructure/http/v1/middleware"
	"kardex/pkg/logger"
)

// RouterConfig holds the assembled services the router exposes.
type RouterConfig struct {
	Logger *logger.Logger

	Purchases      *purchases.Service
	Inventory      *inventory.Service
	Sales          *sales.Service
	Replenishments *replenishments.Service
	Products       *products.Service
	Reports        *reports.Service

	// Auditor records mutations; nil disables auditing.
	Auditor handlers.Auditor

	// DB is pinged by the readiness probe; nil skips the check.
	DB handlers.Pinger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	purchaseHandler := handlers.NewPurchaseHandler(cfg.Purchases, cfg.Auditor)
	inventoryHandler := handlers.NewInventoryHandler(cfg.Inventory, cfg.Auditor)
	saleHandler := handlers.NewSaleHandler(cfg.Sales, cfg.Auditor)
	replenishmentHandler := handlers.NewReplenishmentHandler(cfg.Replenishments, cfg.Auditor)
	productHandler := handlers.NewProductHandler(cfg.Products)
	reportHandler := handlers.NewReportHandler(cfg.Reports)

	api := router.Group("/api/v1")
	{
		p := api.Group("/purchases")
		{
			p.GET("", purchaseHandler.List)
			p.POST("", purchaseHandler.Create)
			p.GET("/unbound", purchaseHandler.ListUnbound)
			p.GET("/ref/:ref", purchaseHandler.GetByRef)
			p.PUT("/:id", purchaseHandler.Update)
			p.DELETE("/:id", purchaseHandler.Delete)
		}

		inv := api.Group("/inventory")
		{
			inv.GET("", inventoryHandler.List)
			inv.POST("", inventoryHandler.Bind)
			inv.GET("/summary", reportHandler.Summary)
			inv.GET("/available", reportHandler.Available)
			inv.GET("/products/:name", reportHandler.ProductAvailability)
			inv.PUT("/products/:name/price", inventoryHandler.UpdatePrice)
			inv.DELETE("/products/:name", inventoryHandler.DeleteProduct)
		}

		s := api.Group("/sales")
		{
			s.GET("", saleHandler.List)
			s.POST("", saleHandler.Create)
			s.PUT("/:id", saleHandler.Update)
			s.DELETE("/:id", saleHandler.Delete)
		}

		r := api.Group("/replenishments")
		{
			r.GET("", replenishmentHandler.List)
			r.POST("", replenishmentHandler.Create)
			r.PUT("/:id", replenishmentHandler.Update)
			r.DELETE("/:id", replenishmentHandler.Delete)
		}

		api.GET("/products", productHandler.List)
	}

	return router
}
