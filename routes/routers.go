package routes

import (
	"log/slog"

	"unibordima/config"
	"unibordima/controllers"
	_ "unibordima/docs"
	"unibordima/middleware"
	"unibordima/models"
	"unibordima/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps là các thành phần đã khởi tạo sẵn mà router cần
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Images services.ImageStore
	Cache  services.Cache
	Logger *slog.Logger
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	cfg := deps.Config
	log := deps.Logger

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)
	listingService := services.NewListingService(services.ListingServiceOptions{
		DB:       deps.DB,
		Images:   deps.Images,
		Cache:    deps.Cache,
		CacheTTL: cfg.CacheTTL,
		Logger:   log,
	})
	reviewService := services.NewReviewService(services.ReviewServiceOptions{
		DB:       deps.DB,
		Ratings:  services.NewRatingAggregator(deps.DB, log),
		Listings: listingService,
		Logger:   log,
	})
	studentService := services.NewStudentService(services.StudentServiceOptions{
		DB:     deps.DB,
		Tokens: tokens,
		Logger: log,
	})
	adminService := services.NewAdminService(services.AdminServiceOptions{
		DB:     deps.DB,
		Tokens: tokens,
		Cache:  deps.Cache,
		Logger: log,
	})

	listingController := controllers.NewListingController(listingService, cfg.MaxUploadMB<<20)
	reviewController := controllers.NewReviewController(reviewService)
	studentController := controllers.NewStudentController(studentService)
	adminController := controllers.NewAdminController(adminService)
	healthController := controllers.NewHealthController(deps.DB)

	router.Use(
		middleware.RequestID(log),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.PrometheusMetrics(),
		middleware.ErrorHandler(),
	)

	authenticated := middleware.AuthMiddleware(tokens)
	adminOnly := middleware.AuthMiddleware(tokens, models.RoleAdmin)
	studentOnly := middleware.AuthMiddleware(tokens, models.RoleStudent)

	router.GET("/ping", healthController.Ping)
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Listing
	listings := api.Group("/listings")
	listings.GET("", listingController.GetAllListings)
	listings.GET("/search", listingController.SearchListings)
	listings.GET("/:id", listingController.GetListing)
	listings.POST("", adminOnly, listingController.CreateListing)
	listings.PUT("/:id", adminOnly, listingController.UpdateListing)
	listings.DELETE("/:id", adminOnly, listingController.DeleteListing)

	// Review
	reviews := api.Group("/reviews")
	reviews.GET("/listing/:listingId", reviewController.GetListingReviews)
	reviews.POST("", studentOnly, reviewController.CreateReview)
	reviews.PUT("/:id", studentOnly, reviewController.UpdateReview)
	reviews.DELETE("/:id", authenticated, middleware.RoleMiddleware(models.RoleStudent, models.RoleAdmin), reviewController.DeleteReview)
	reviews.GET("", adminOnly, reviewController.GetAllReviews)
	reviews.PUT("/:id/moderate", adminOnly, reviewController.ModerateReview)

	// Student
	students := api.Group("/students")
	students.POST("/register", studentController.Register)
	students.POST("/login", studentController.Login)
	students.GET("/me", studentOnly, studentController.GetMe)
	students.PUT("/profile", studentOnly, studentController.UpdateProfile)
	students.POST("/saved-listings/:listingId", studentOnly, studentController.SaveListing)
	students.DELETE("/saved-listings/:listingId", studentOnly, studentController.RemoveSavedListing)

	// Admin
	admin := api.Group("/admin")
	admin.POST("/login", adminController.Login)
	admin.GET("/stats", adminOnly, adminController.GetStats)
	admin.GET("/students", adminOnly, adminController.GetStudents)
}
