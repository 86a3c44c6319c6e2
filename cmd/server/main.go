package main

import (
	"log"
	"time"

	"storefront-billing-backend/internal/config"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/models"
	"storefront-billing-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		zlog.Fatalf("database: %v", err)
	}

	db.AutoMigrate(
		&models.DocumentCounter{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Product{},
		&models.ServiceOffering{},
		&models.AdminUser{},
		&models.ContactMessage{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, zlog)

	zlog.Infof("listening on %s", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		zlog.Fatalf("server: %v", err)
	}
}
