package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/novarides/nova-backend/internal/database"
	"github.com/novarides/nova-backend/internal/handlers"
	"github.com/novarides/nova-backend/internal/middleware"
	"github.com/novarides/nova-backend/internal/payments"
	"github.com/novarides/nova-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis (optional - logout revocation degrades without it)
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Payment gateways
	paymentCfg := payments.LoadConfig()
	var paystack payments.PaystackClient
	if paymentCfg.Paystack {
		paystack = payments.NewPaystack(os.Getenv("PAYSTACK_SECRET_KEY"), "")
	}
	var stripe payments.StripeClient
	if paymentCfg.Stripe {
		stripe = payments.NewStripe(os.Getenv("STRIPE_SECRET_KEY"), "")
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/logout", middleware.AuthMiddleware(db), handlers.Logout())
		}

		// Public catalog; viewers with a token get unredacted fields when entitled
		api.GET("/vehicles", middleware.OptionalAuth(), handlers.GetVehicles(db))
		api.GET("/vehicles/:id", middleware.OptionalAuth(), handlers.GetVehicle(db))
		api.GET("/search", handlers.SearchVehicles(db))
		api.GET("/reviews", handlers.GetReviews(db))
		api.GET("/payments/config", handlers.GetPaymentConfig(paymentCfg))

		// Gateway callbacks land here after checkout
		api.GET("/payments/paystack/verify", handlers.PaystackVerify(db, paystack, hub))
		api.GET("/payments/stripe/verify", handlers.StripeVerify(db, stripe, hub))

		// Scheduler hook
		api.GET("/cron/check-license-expiry", handlers.CheckLicenseExpiry(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(db), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(db))
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.PATCH("/role", handlers.UpdateRole(db))
				users.POST("/documents/license", handlers.UploadLicense(db))
				users.POST("/documents/avatar", handlers.UploadAvatar(db))
			}

			// Vehicle management
			vehicles := protected.Group("/vehicles")
			{
				vehicles.POST("", handlers.CreateVehicle(db))
				vehicles.PUT("/:id", handlers.UpdateVehicle(db))
				vehicles.DELETE("/:id", handlers.DeleteVehicle(db))
			}

			// Bookings routes
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("", handlers.GetBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PATCH("/:id/status", handlers.UpdateBookingStatus(db, hub))
			}

			// Payment routes
			pay := protected.Group("/payments")
			{
				pay.POST("/authorize", handlers.AuthorizePayment(db, hub))
				pay.POST("/paystack/initialize", handlers.PaystackInitialize(db, paystack, paymentCfg))
				pay.POST("/stripe/create-session", handlers.StripeCreateSession(db, stripe, paymentCfg))
			}

			// Review routes
			reviews := protected.Group("/reviews")
			{
				reviews.POST("", handlers.CreateReview(db))
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/users", handlers.ListUsers(db))
				admin.PATCH("/users/:id/ban", handlers.BanUser(db))
				admin.PATCH("/users/:id/unban", handlers.UnbanUser(db))
				admin.PATCH("/users/:id/verify-license", handlers.VerifyLicense(db))
				admin.PATCH("/vehicles/:id/approve", handlers.ApproveVehicle(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
