package routes

import (
	"swiftparcel/internal/adapters/http/handlers"
	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/config"
	"swiftparcel/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application. The store handle is
// constructed once at startup and passed in here; repositories and services
// receive it by injection.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	parcelRepo := repositories.NewParcelRepository(db)
	riderRepo := repositories.NewRiderRepository(db)
	trackingRepo := repositories.NewTrackingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	parcelService := services.NewParcelService(parcelRepo, riderRepo, trackingRepo)
	riderService := services.NewRiderService(riderRepo, userRepo)
	trackingService := services.NewTrackingService(trackingRepo)
	paymentService := services.NewPaymentService(paymentRepo, parcelRepo, cfg)
	cronService := services.NewCronService(riderRepo, refreshTokenRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	parcelHandler := handlers.NewParcelHandler(parcelService)
	riderHandler := handlers.NewRiderHandler(riderService, parcelService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	auth := middleware.AuthMiddleware(cfg)

	// Auth routes (public, strictly rate limited)
	authRoutes := apiV1.Group("/auth", middleware.AuthRateLimiter())
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	// User routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Post("/", userHandler.RegisterOrTouch) // public upsert
	userRoutes.Get("/search", auth, middleware.AdminOnly(), userHandler.Search)
	userRoutes.Get("/:email/role", auth, userHandler.GetRole)
	userRoutes.Patch("/:id/role", auth, middleware.AdminOnly(), userHandler.UpdateRole)

	// Parcel routes
	parcelRoutes := apiV1.Group("/parcels", auth)
	parcelRoutes.Get("/", parcelHandler.List)
	parcelRoutes.Post("/", parcelHandler.Create)
	parcelRoutes.Get("/:id", parcelHandler.Get)
	parcelRoutes.Delete("/:id", parcelHandler.Delete)
	parcelRoutes.Patch("/:id/assign", middleware.AdminOnly(), parcelHandler.Assign)
	parcelRoutes.Patch("/:id/status", parcelHandler.UpdateStatus)
	parcelRoutes.Patch("/:id/cashout", parcelHandler.CashOut)

	// Rider routes
	riderRoutes := apiV1.Group("/riders")
	riderRoutes.Post("/", riderHandler.Apply) // public application
	riderRoutes.Get("/", auth, middleware.AdminOnly(), riderHandler.List)
	riderRoutes.Get("/pending", auth, middleware.AdminOnly(), riderHandler.ListPending)
	riderRoutes.Get("/active", auth, middleware.AdminOnly(), riderHandler.ListActive)
	riderRoutes.Get("/parcels", auth, middleware.RiderOnly(), riderHandler.MyParcels)
	riderRoutes.Get("/parcels/completed", auth, middleware.RiderOnly(), riderHandler.MyCompletedParcels)
	riderRoutes.Patch("/:id", auth, middleware.AdminOnly(), riderHandler.UpdateStatus)

	// Tracking routes
	trackingRoutes := apiV1.Group("/trackings", auth)
	trackingRoutes.Post("/", trackingHandler.Append)
	trackingRoutes.Get("/:trackingId", trackingHandler.History)

	// Payment routes
	paymentRoutes := apiV1.Group("/payments", auth)
	paymentRoutes.Get("/", paymentHandler.List)
	paymentRoutes.Post("/", paymentHandler.Record)
	paymentRoutes.Post("/create-payment-intent", paymentHandler.CreateIntent)

	return cronService
}
