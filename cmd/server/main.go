package main

import (
	"context"
	"log"
	"time"

	"auraweb/internal/config"
	"auraweb/internal/database"
	"auraweb/internal/handlers"
	"auraweb/internal/middleware"
	"auraweb/internal/redis"
	"auraweb/internal/repository"
	"auraweb/internal/services"
	"auraweb/internal/storage"
	"auraweb/pkg/chapa"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis; stats are recomputed from the database when the
	// cache is down
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable, stats caching disabled: %v", err)
		redisClient = nil
	}

	// Initialize SES mailer
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Printf("Warning: failed to load AWS config, email delivery will fail: %v", err)
	}
	notifier := services.NewNotificationService(awsCfg, cfg.FromEmail, cfg.AdminEmail)

	// Initialize Chapa client and upload store
	chapaClient := chapa.NewClient(cfg.ChapaBaseURL, cfg.ChapaSecretKey, cfg.ChapaCallbackURL, cfg.ChapaReturnURL)
	store := storage.NewStore(cfg.UploadDir, cfg.PublicBaseURL)

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	submissionService := services.NewSubmissionService(submissionRepo, notifier)
	paymentService := services.NewPaymentService(submissionRepo, chapaClient, notifier)
	statsService := services.NewStatsService(submissionRepo, redisClient, time.Duration(cfg.StatsCacheTTL)*time.Second)

	if err := userService.EnsureAdminUser(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionService, statsService, store)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo)
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret)

	// Setup routes
	router := gin.Default()
	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// Public intake and payment endpoints
		api.POST("/submissions", submissionHandler.Create)
		api.POST("/upload", submissionHandler.Upload)
		api.GET("/payments/callback", paymentHandler.Callback)
		api.POST("/payments/callback", paymentHandler.Callback)
		api.GET("/payments/verify", paymentHandler.Verify)

		// Public portfolio reads
		api.GET("/portfolio", portfolioHandler.List)
		api.GET("/portfolio/:id", portfolioHandler.Get)
	}

	admin := api.Group("", middleware.AuthRequired(cfg.JWTSecret))
	{
		admin.GET("/submissions", submissionHandler.List)
		admin.GET("/submissions/:id", submissionHandler.Get)
		admin.PUT("/submissions/:id", submissionHandler.Update)
		admin.PATCH("/submissions/:id", submissionHandler.Update)
		admin.POST("/submissions/:id/create_payment", paymentHandler.CreatePayment)
		admin.GET("/dashboard/stats", submissionHandler.DashboardStats)
		admin.POST("/portfolio", portfolioHandler.Create)
		admin.PUT("/portfolio/:id", portfolioHandler.Update)
		admin.DELETE("/portfolio/:id", portfolioHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
