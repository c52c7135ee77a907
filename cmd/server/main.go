package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modaluna/tienda/internal/config"
	"github.com/modaluna/tienda/internal/middleware"
	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/handler"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting tienda service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to open database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if err := entity.SeedCategories(db); err != nil {
		zapLogger.Warn("Seed categories warning", zap.Error(err))
	}
	zapLogger.Info("Database ready", zap.String("path", cfg.Database.Path))

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite handles one writer at a time; keep the pool small.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Enforce FK constraints, off by default in SQLite.
	db.Exec("PRAGMA foreign_keys = ON")

	return db, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
			customers.GET("/:id/purchases", h.Customer.PurchaseHistory)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.Catalog.ListCategories)
			categories.POST("", h.Catalog.CreateCategory)
			categories.PUT("/:id", h.Catalog.UpdateCategory)
			categories.DELETE("/:id", h.Catalog.DeleteCategory)
		}

		products := v1.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("", h.Catalog.ListProducts)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
			products.DELETE("/:id", h.Catalog.DeleteProduct)
			products.POST("/:id/variants", h.Catalog.CreateVariant)
			products.GET("/:id/variants", h.Catalog.ListVariants)
			products.GET("/:id/suppliers", h.Supplier.SuppliersForProduct)
		}

		variants := v1.Group("/variants")
		{
			variants.PUT("/:id", h.Catalog.UpdateVariant)
			variants.DELETE("/:id", h.Catalog.DeleteVariant)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("/low-stock", h.Inventory.LowStock)
			inventory.GET("/out-of-stock", h.Inventory.OutOfStock)
			inventory.GET("/by-category", h.Inventory.StockByCategory)
			inventory.GET("/transactions", h.Inventory.Transactions)
			inventory.GET("/:variantId", h.Inventory.Get)
			inventory.PUT("/:variantId", h.Inventory.SetQuantity)
			inventory.POST("/:variantId/adjust", h.Inventory.Adjust)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", h.Sale.Create)
			sales.GET("", h.Sale.List)
			sales.GET("/payment-methods", h.Sale.PaymentMethods)
			sales.GET("/by-payment-method", h.Sale.ByPaymentMethod)
			sales.GET("/top-products", h.Sale.TopProducts)
			sales.GET("/:id", h.Sale.Get)
			sales.DELETE("/:id", h.Sale.Cancel)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("", h.Supplier.List)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", h.Supplier.Delete)
			suppliers.GET("/:id/products", h.Supplier.ListProducts)
			suppliers.POST("/:id/products/:productId", h.Supplier.LinkProduct)
			suppliers.DELETE("/:id/products/:productId", h.Supplier.UnlinkProduct)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/sales", h.Report.SalesReport)
			reports.GET("/sales/export", h.Report.ExportSales)
			reports.GET("/sales-by-period", h.Report.SalesByPeriod)
			reports.GET("/sales-by-category", h.Report.SalesByCategory)
			reports.GET("/top-customers", h.Report.TopCustomers)
			reports.GET("/inventory", h.Report.InventoryReport)
			reports.GET("/inventory/export", h.Report.ExportInventory)
			reports.GET("/inventory-value", h.Report.InventoryValue)
		}
	}
}
