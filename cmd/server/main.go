package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/controller"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	"github.com/addispot/addispot-backend/internal/db"
	"github.com/addispot/addispot-backend/internal/middleware"
	"github.com/addispot/addispot-backend/internal/router"
	"github.com/addispot/addispot-backend/internal/scheduler"
	"github.com/addispot/addispot-backend/pkg/logger"
	"github.com/addispot/addispot-backend/pkg/redis"
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

	logger.Info("Starting AddiSpot Admin API", map[string]interface{}{
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

	// Seed baseline categories and cuisines (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Token blacklisting is skipped when no Redis host is configured
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without token blacklist", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	placeRepo := repository.NewPlaceRepository(db.GetDB())
	branchRepo := repository.NewBranchRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	cuisineRepo := repository.NewCuisineRepository(db.GetDB())
	requestRepo := repository.NewRequestRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, &cfg.JWT, &cfg.Admin)
	requestService := service.NewRequestService(db.GetDB(), requestRepo, placeRepo)
	placeService := service.NewPlaceService(placeRepo)
	branchService := service.NewBranchService(branchRepo, placeRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	cuisineService := service.NewCuisineService(cuisineRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	requestController := controller.NewRequestController(requestService)
	placeController := controller.NewPlaceController(placeService)
	branchController := controller.NewBranchController(branchService)
	categoryController := controller.NewCategoryController(categoryService)
	cuisineController := controller.NewCuisineController(cuisineService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo)

	// Start the moderation digest scheduler
	moderationScheduler := scheduler.NewModerationScheduler(requestRepo, &cfg.Moderation)
	if err := moderationScheduler.Start(); err != nil {
		logger.Warn("Moderation digest scheduler not started", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer moderationScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		authController,
		requestController,
		placeController,
		branchController,
		categoryController,
		cuisineController,
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
