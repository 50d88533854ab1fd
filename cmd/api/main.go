package main

import (
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/logger"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           TileTrack API
// @version         1.0
// @description     Backend for a tile-trading business: inventory, quotations, GST tax invoices and client ledger.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dsn := cfg.DatabaseURL
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	db, err := database.NewConnection(cfg.DBDriver, dsn)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to database")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	truckRepo := repository.NewTruckEntryRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	inventoryService := service.NewInventoryService(productRepo, truckRepo, auditRepo, txManager, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, auditRepo, txManager, wsHub)
	invoiceService := service.NewInvoiceService(orderService, cfg.Company, cfg.Bank)
	ledgerService := service.NewLedgerService(ledgerRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)
	statsService := service.NewStatisticsService(statsRepo)

	productHandler := handler.NewProductHandler(inventoryService)
	orderHandler := handler.NewOrderHandler(orderService, invoiceService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	auditHandler := handler.NewAuditHandler(auditService)
	statsHandler := handler.NewStatisticsHandler(statsService)

	// Set up Gin Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.Recovery(zlog))
	router.Use(middleware.RequestLogger(zlog))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API routes
	api := router.Group("/api")
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	ledgerHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)

	zlog.Info("server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
