package router

import (
	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/internal/app/controller"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type Router struct {
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	productController     *controller.ProductController
	brandController       *controller.BrandController
	hashtagController     *controller.HashtagController
	bannerController      *controller.PromoController
	promotionController   *controller.PromoController
	publicationController *controller.PromoController
	orderController       *controller.OrderController
	reviewController      *controller.ReviewController
	bookingController     *controller.BookingController
	aiController          *controller.AIController
	uploadController      *controller.UploadController
	exportController      *controller.ExportController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	brandController *controller.BrandController,
	hashtagController *controller.HashtagController,
	bannerController *controller.PromoController,
	promotionController *controller.PromoController,
	publicationController *controller.PromoController,
	orderController *controller.OrderController,
	reviewController *controller.ReviewController,
	bookingController *controller.BookingController,
	aiController *controller.AIController,
	uploadController *controller.UploadController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		categoryController:    categoryController,
		productController:     productController,
		brandController:       brandController,
		hashtagController:     hashtagController,
		bannerController:      bannerController,
		promotionController:   promotionController,
		publicationController: publicationController,
		orderController:       orderController,
		reviewController:      reviewController,
		bookingController:     bookingController,
		aiController:          aiController,
		uploadController:      uploadController,
		exportController:      exportController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Vitrine API is running",
		})
	})

	// local uploads are served straight from disk
	router.Static(r.config.Upload.PublicPath, r.config.Upload.LocalDir)

	admin := []gin.HandlerFunc{
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole("admin"),
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		api.GET("/users", append(admin, r.authController.ListUsers)...)

		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryController.GetTree)
			categories.GET("/:slug", r.categoryController.GetCategoryBySlug)
			categories.POST("", append(admin, r.categoryController.CreateCategory)...)
			categories.PUT("/:id", append(admin, r.categoryController.UpdateCategory)...)
			categories.DELETE("", append(admin, r.categoryController.DeleteCategories)...)
		}

		products := api.Group("/products")
		{
			products.GET("", r.authMiddleware.OptionalAuthenticate(), r.productController.ListProducts)
			products.GET("/:slug", r.productController.GetProductBySlug)
			products.POST("", append(admin, r.productController.CreateProduct)...)
			products.PUT("/:id", append(admin, r.productController.UpdateProduct)...)
			products.DELETE("", append(admin, r.productController.DeleteProducts)...)
		}

		brands := api.Group("/brands")
		{
			brands.GET("", r.brandController.ListBrands)
			brands.POST("", append(admin, r.brandController.CreateBrand)...)
			brands.PUT("/:id", append(admin, r.brandController.UpdateBrand)...)
			brands.DELETE("", append(admin, r.brandController.DeleteBrands)...)
		}

		hashtags := api.Group("/hashtags")
		{
			hashtags.GET("", r.hashtagController.ListHashtags)
			hashtags.POST("", append(admin, r.hashtagController.CreateHashtag)...)
			hashtags.PUT("/:id", append(admin, r.hashtagController.UpdateHashtag)...)
			hashtags.DELETE("", append(admin, r.hashtagController.DeleteHashtags)...)
		}

		registerPromoRoutes(api.Group("/banners"), r.bannerController, admin)
		registerPromoRoutes(api.Group("/promotions"), r.promotionController, admin)
		registerPromoRoutes(api.Group("/publications"), r.publicationController, admin)

		orders := api.Group("/orders")
		{
			orders.POST("", r.authMiddleware.OptionalAuthenticate(), r.orderController.CreateOrder)
			orders.GET("/me", r.authMiddleware.Authenticate(), r.orderController.GetMyOrders)
			orders.GET("", append(admin, r.orderController.ListOrders)...)
			orders.GET("/:id", append(admin, r.orderController.GetOrderByID)...)
			orders.DELETE("/:id", append(admin, r.orderController.DeleteOrder)...)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", r.reviewController.ListProductReviews)
			reviews.POST("", r.reviewController.CreateReview)
			reviews.DELETE("", append(admin, r.reviewController.DeleteReviews)...)
		}

		services := api.Group("/services")
		{
			services.GET("", r.bookingController.ListServices)
			services.GET("/:id", r.bookingController.GetServiceByID)
			services.POST("", append(admin, r.bookingController.CreateService)...)
			services.PUT("/:id", append(admin, r.bookingController.UpdateService)...)
			services.DELETE("", append(admin, r.bookingController.DeleteServices)...)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", r.bookingController.CreateReservation)
			reservations.GET("", append(admin, r.bookingController.ListReservations)...)
			reservations.PATCH("/:id/validate", append(admin, r.bookingController.ValidateReservation)...)
			reservations.DELETE("", append(admin, r.bookingController.DeleteReservations)...)
		}

		api.POST("/ai-search", r.aiController.Search)
		api.POST("/ai-generate", append(admin, r.aiController.Generate)...)

		api.POST("/upload/:folder", append(admin, r.uploadController.Upload)...)

		export := api.Group("/export", admin...)
		{
			export.GET("/orders", r.exportController.ExportOrders)
			export.GET("/reservations", r.exportController.ExportReservations)
		}
	}

	return router
}

func registerPromoRoutes(group *gin.RouterGroup, ctrl *controller.PromoController, admin []gin.HandlerFunc) {
	group.GET("", ctrl.List)
	group.POST("", append(admin, ctrl.Create)...)
	group.PUT("/:id", append(admin, ctrl.Update)...)
	group.DELETE("", append(admin, ctrl.Delete)...)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
