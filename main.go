package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"reservation-server/config"
	"reservation-server/database"
	"reservation-server/jobs"
	"reservation-server/middleware"
	"reservation-server/repositories"
	"reservation-server/routes"
	"reservation-server/services"
	"reservation-server/utils"
	ws "reservation-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}

	// Redis is a best-effort cache; boot without it if unreachable
	if err := utils.InitRedis(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, property cache disabled")
	}
	defer utils.CloseRedis()

	// Stores
	userStore := repositories.NewUserStore(database.DB)
	propertyStore := repositories.NewPropertyStore(database.DB)
	bookingStore := repositories.NewBookingStore(database.DB)
	paymentStore := repositories.NewPaymentStore(database.DB)
	notificationStore := repositories.NewNotificationStore(database.DB)
	tokenStore := repositories.NewTokenStore(database.DB)

	// WebSocket hub pushes notifications to connected users
	hub := ws.NewHub()
	go hub.Run()

	// Services
	notificationService := services.NewNotificationService(notificationStore, userStore, hub)
	capacityPolicy := services.CapacityPolicyFromMode(config.AppConfig.Occupancy.Mode)
	occupancyService := services.NewOccupancyService(propertyStore, bookingStore, paymentStore, notificationService, capacityPolicy)
	paymentService := services.NewPaymentService(paymentStore, notificationService)
	analyticsService := services.NewAnalyticsService(paymentStore)
	jwtService := services.NewJWTService(tokenStore)
	mailService := services.NewMailService()

	logrus.WithField("mode", config.AppConfig.Occupancy.Mode).Info("Capacity policy configured")

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.GinMode)

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.RequestLogMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "User-Agent", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"message":           "Reservation server is running",
			"time":              time.Now().UTC(),
			"websocket_clients": len(hub.ConnectedUsers()),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes, jwtService, mailService, tokenStore)

		routes.RegisterPropertyRoutes(api, occupancyService)
		routes.RegisterBookingRoutes(api, occupancyService, mailService)
		routes.RegisterTenantRoutes(api, occupancyService, notificationService)
		routes.RegisterPropertyMediaRoutes(api, occupancyService, propertyStore)
		routes.RegisterPaymentRoutes(api, paymentService)
		routes.RegisterProfileRoutes(api, occupancyService, paymentService, notificationService, jwtService)
		routes.RegisterNotificationRoutes(api, notificationService)
		routes.RegisterAnalyticsRoutes(api, analyticsService)

		// Notification push channel
		api.GET("/ws/notifications", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
			ws.ServeWebSocket(hub, c.Writer, c.Request, c.GetUint("user_id"))
		})
	}

	// Start background jobs
	expiryJob := jobs.NewBookingExpiryJob(bookingStore, occupancyService)
	expiryJob.Start()
	defer expiryJob.Stop()

	// Daily token cleanup
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				logrus.WithError(err).Error("Token cleanup failed")
			}
		}
	}()

	port := config.AppConfig.Server.Port
	logrus.WithField("port", port).Info("Server starting")
	if err := router.Run("0.0.0.0:" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
