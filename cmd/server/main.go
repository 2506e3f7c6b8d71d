package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/adapters/http/routes"
	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v78"

	_ "swiftparcel/docs" // Swagger docs
)

// @title SwiftParcel API
// @version 1.0
// @description Parcel delivery logistics backend: parcels, riders, payments, tracking.

// @contact.name API Support
// @contact.email support@swiftparcel.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Payment gateway key
	stripe.Key = cfg.Payment.SecretKey

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SwiftParcel API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cronService := routes.Setup(app, db, cfg)

	// Start maintenance jobs (rider reconcile sweep, token purge)
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
