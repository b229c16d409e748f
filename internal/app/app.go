package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	notificationHTTP "buzzline/internal/controller/http"
	"buzzline/internal/repo/persistent"
	"buzzline/internal/usecase"
	"buzzline/pkg/config"
	"buzzline/pkg/jwt"
	"buzzline/pkg/logger"
	"buzzline/pkg/middleware"
	"buzzline/pkg/queue"
	"buzzline/pkg/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "buzzline/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Repositories
	notificationRepo := persistent.NewNotificationRepository(db)
	settingsRepo := persistent.NewSettingsRepository(db)

	// Use cases
	publisher := realtime.NewRedisPublisher(redisClient, log)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, settingsRepo, publisher, log)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo, log)

	// HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, redisClient, jwtService, log, cfg.IsDevelopment())
	settingsHandler := notificationHTTP.NewSettingsHandler(settingsUseCase, log)

	// Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check, with event queue depth when the queue is connected.
	// The nil check matters: a typed nil inside the interface would pass
	// the handler's nil guard.
	var queueStats notificationHTTP.QueueStats
	if queueClient != nil {
		queueStats = queueClient
	}
	r.GET("/health", notificationHTTP.Health(queueStats))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	protected := api.Group("/notifications")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("", notificationHandler.GetNotifications)
		protected.GET("/unread-count", notificationHandler.GetUnreadCount)
		protected.GET("/stats", notificationHandler.GetStats)
		protected.PATCH("/mark-all-read", notificationHandler.MarkAllAsRead)
		protected.PATCH("/:id/read", notificationHandler.MarkAsRead)
		protected.DELETE("/:id", notificationHandler.DeleteNotification)

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)
		protected.POST("/settings/reset", settingsHandler.ResetSettings)

		// Debug endpoint, not registered in production
		if !cfg.IsProduction() {
			protected.POST("/test",
				middleware.RateLimitMiddleware(redisClient, 5, time.Minute),
				notificationHandler.CreateTestNotification,
			)
		}
	}

	// WebSocket endpoint - authenticates via query parameter
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Consume platform events into stored notifications
	if queueClient != nil {
		go func() {
			log.Info("Starting notification event consumer...")
			if err := queueClient.ConsumeEvents(notificationUseCase.HandleEventTask); err != nil {
				log.Error("Error starting notification event consumer: %v", err)
			}
		}()
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Notification service exited")
}
