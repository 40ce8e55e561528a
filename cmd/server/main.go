package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/internal/app/controller"
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/karimelh/vitrine-backend/internal/middleware"
	"github.com/karimelh/vitrine-backend/internal/router"
	"github.com/karimelh/vitrine-backend/internal/storage"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/karimelh/vitrine-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // use "json" in production
		EnableColor: true,
	})

	logger.Info("Starting Vitrine Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// redis is optional; caching and token revocation degrade gracefully
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// uploads go to S3 when credentials are configured, local disk otherwise
	var store storage.Storage
	if cfg.S3.AccessKeyID != "" {
		store = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		local, err := storage.NewLocalStorage(cfg.Upload.LocalDir, cfg.Upload.PublicPath)
		if err != nil {
			logger.Fatal("Failed to initialize local storage", err)
		}
		store = local
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	hashtagRepo := repository.NewHashtagRepository(db.GetDB())
	promoRepo := repository.NewPromoRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	serviceRepo := repository.NewServiceRepository(db.GetDB())
	reservationRepo := repository.NewReservationRepository(db.GetDB())

	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, hashtagRepo, db.GetDB())
	brandService := service.NewBrandService(brandRepo)
	hashtagService := service.NewHashtagService(hashtagRepo)
	promoService := service.NewPromoService(promoRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, db.GetDB())
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	bookingService := service.NewBookingService(serviceRepo, reservationRepo, db.GetDB())
	aiService := service.NewAIService(cfg, productRepo)
	exportService := service.NewExportService(orderRepo, reservationRepo)

	authController := controller.NewAuthController(authService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	brandController := controller.NewBrandController(brandService)
	hashtagController := controller.NewHashtagController(hashtagService)
	bannerController := controller.NewPromoController(promoService, model.PromoBanner, "banners")
	promotionController := controller.NewPromoController(promoService, model.PromoPromotion, "promotions")
	publicationController := controller.NewPromoController(promoService, model.PromoPublication, "publications")
	orderController := controller.NewOrderController(orderService)
	reviewController := controller.NewReviewController(reviewService)
	bookingController := controller.NewBookingController(bookingService)
	aiController := controller.NewAIController(aiService)
	uploadController := controller.NewUploadController(store, cfg.Upload.MaxFileSize)
	exportController := controller.NewExportController(exportService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		categoryController,
		productController,
		brandController,
		hashtagController,
		bannerController,
		promotionController,
		publicationController,
		orderController,
		reviewController,
		bookingController,
		aiController,
		uploadController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
