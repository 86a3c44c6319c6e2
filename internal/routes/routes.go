package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "storefront-billing-backend/internal/handlers"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/repository"
	"storefront-billing-backend/internal/services/billing"
	"storefront-billing-backend/internal/services/numbering"
	"storefront-billing-backend/internal/services/orders"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger) {
	counterRepo := repository.NewCounterRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceOfferingRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	contactRepo := repository.NewContactRepository(db)

	allocator := numbering.NewAllocator(counterRepo, log)
	compiler := billing.NewCompiler(invoiceRepo, allocator, log)
	orderService := orders.NewService(orderRepo, productRepo, allocator, log)

	invoiceHandler := handler.NewInvoiceHandler(compiler, invoiceRepo)
	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(productRepo, serviceRepo)
	adminHandler := handler.NewAdminHandler(adminRepo)
	contactHandler := handler.NewContactHandler(contactRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Invoicing
	invoices := api.Group("/invoices")
	{
		invoices.POST("", invoiceHandler.Create)
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.PUT("/:id", invoiceHandler.Update)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	// Checkout / orders
	ordersGroup := api.Group("/orders")
	{
		ordersGroup.POST("", orderHandler.Place)
		ordersGroup.GET("", orderHandler.List)
		ordersGroup.GET("/:id", orderHandler.Get)
		ordersGroup.POST("/:id/status", orderHandler.UpdateStatus)
	}

	// Catalog (storefront reads, admin writes)
	products := api.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.POST("", catalogHandler.CreateProduct)
		products.GET("/:id", catalogHandler.GetProduct)
		products.PUT("/:id", catalogHandler.UpdateProduct)
		products.DELETE("/:id", catalogHandler.DeleteProduct)
	}
	services := api.Group("/services")
	{
		services.GET("", catalogHandler.ListServices)
		services.POST("", catalogHandler.CreateService)
		services.GET("/:id", catalogHandler.GetService)
		services.PUT("/:id", catalogHandler.UpdateService)
		services.DELETE("/:id", catalogHandler.DeleteService)
	}

	// Contact form
	contact := api.Group("/contact")
	{
		contact.POST("", contactHandler.Submit)
		contact.GET("", contactHandler.List)
	}

	// Admin panel users
	admins := api.Group("/admins")
	{
		admins.GET("", adminHandler.List)
		admins.POST("", adminHandler.Create)
		admins.PUT("/:id", adminHandler.Update)
		admins.DELETE("/:id", adminHandler.Delete)
	}
}
