package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/handler"
	mid "github.com/maynoewai/ABC-car-sale-BE/internal/middleware"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/config"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/jwtutil"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/mediastore"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting car marketplace service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Detailed error messages only outside production
	apierror.Verbose = !appConfig.IsProduction()

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize image hosting
	if err := mediastore.Initialize(appConfig); err != nil {
		log.Fatal("Failed to initialize media store", zap.Error(err))
	}
	log.Info("Media store initialized", zap.String("bucket", appConfig.Media.Bucket))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Public routes
	e.POST("/register", handler.Register)
	e.POST("/login", handler.Login)
	e.GET("/cars", handler.ListCars)
	e.GET("/cars/:id", handler.ShowCar)
	e.GET("/cars/:id/bids", handler.ListCarBids)

	// Authenticated routes
	authed := e.Group("", mid.AuthMiddleware)
	authed.POST("/cars", handler.CreateCar)
	authed.PUT("/cars/:id", handler.UpdateCar)
	authed.DELETE("/cars/:id", handler.DeleteCar)
	authed.POST("/cars/:id/bids", handler.PlaceBid)

	authed.GET("/user", handler.ShowProfile)
	authed.PUT("/user", handler.UpdateProfile)
	authed.DELETE("/user", handler.DeleteAccount)
	authed.GET("/user/bids", handler.MyBids)
	authed.GET("/user/listings", handler.MyListings)
	authed.GET("/user/test-drives", handler.MyTestDrives)

	authed.GET("/test-drives", handler.ListTestDrives)
	authed.POST("/test-drives", handler.BookTestDrive)
	authed.DELETE("/test-drives/:id", handler.DeleteTestDrive)

	// Admin routes; the moderation gate runs inside each handler against
	// the explicit identity
	authed.GET("/admin/users", handler.AdminListUsers)
	authed.PUT("/admin/users/:id", handler.AdminUpdateUserRole)
	authed.DELETE("/admin/users/:id", handler.AdminDeleteUser)
	authed.GET("/admin/cars", handler.AdminListCars)
	authed.GET("/admin/cars/:id", handler.AdminShowCar)
	authed.DELETE("/admin/cars/:id", handler.AdminDeleteCar)
	authed.GET("/admin/bids", handler.AdminListBids)
	authed.PUT("/admin/bids/:id", handler.AdminUpdateBid)
	authed.DELETE("/admin/bids/:id", handler.AdminDeleteBid)
	authed.GET("/admin/test-drives", handler.AdminListTestDrives)
	authed.PUT("/admin/test-drives/:id", handler.AdminUpdateTestDrive)
	authed.DELETE("/admin/test-drives/:id", handler.AdminDeleteTestDrive)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
