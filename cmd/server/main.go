package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carhive/carhive-backend/config"
	"github.com/carhive/carhive-backend/internal/app/controller"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/carhive/carhive-backend/internal/router"
	"github.com/carhive/carhive-backend/internal/scheduler"
	"github.com/carhive/carhive-backend/internal/storage"
	ws "github.com/carhive/carhive-backend/internal/websocket"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/carhive/carhive-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting CarHive Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Bootstrap admin account (no-op when already present)
	if err := db.EnsureAdmin(cfg.Server.AdminUsername, cfg.Server.AdminEmail, cfg.Server.AdminPassword); err != nil {
		logger.Warn("Failed to ensure admin account", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis backs token revocation and the catalog cache. The server still
	// works without it, just slower and without logout revocation.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Notification hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	companyRepo := repository.NewCompanyRepository(db.GetDB())
	requestRepo := repository.NewCompanyRequestRepository(db.GetDB())
	carRepo := repository.NewCarRepository(db.GetDB())
	partRepo := repository.NewPartRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewPartOrderRepository(db.GetDB())
	purchaseRepo := repository.NewCarPurchaseRepository(db.GetDB())
	testDriveRepo := repository.NewTestDriveRepository(db.GetDB())
	loanRepo := repository.NewLoanRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	carService := service.NewCarService(carRepo, companyRepo)
	partService := service.NewPartService(partRepo, carRepo, companyRepo)
	cartService := service.NewCartService(db.GetDB(), cartRepo, partRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, notificationService)
	purchaseService := service.NewPurchaseService(db.GetDB(), purchaseRepo, notificationService)
	testDriveService := service.NewTestDriveService(testDriveRepo, carRepo, notificationService)
	loanService := service.NewLoanService(loanRepo, carRepo, notificationService)
	companyService := service.NewCompanyService(db.GetDB(), companyRepo, requestRepo, userRepo, notificationService)
	userService := service.NewUserService(userRepo, orderRepo, purchaseRepo, testDriveRepo, loanRepo)
	dashboardService := service.NewDashboardService(
		companyRepo, carRepo, partRepo, purchaseRepo, testDriveRepo,
		userRepo, requestRepo, loanRepo, orderRepo,
	)

	// S3 storage for listing images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	carController := controller.NewCarController(carService)
	partController := controller.NewPartController(partService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, companyService)
	purchaseController := controller.NewPurchaseController(purchaseService, companyService)
	testDriveController := controller.NewTestDriveController(testDriveService, companyService)
	loanController := controller.NewLoanController(loanService, companyService)
	companyController := controller.NewCompanyController(companyService, dashboardService)
	adminController := controller.NewAdminController(companyService, dashboardService, userService)
	uploadController := controller.NewUploadController(s3Storage)
	notificationController := controller.NewNotificationController(notificationService, hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Catalog cache warmer
	catalogScheduler := scheduler.NewCatalogScheduler(carService)
	if err := catalogScheduler.Start(); err != nil {
		logger.Warn("Catalog scheduler disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		carController,
		partController,
		cartController,
		orderController,
		purchaseController,
		testDriveController,
		loanController,
		companyController,
		adminController,
		uploadController,
		notificationController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
