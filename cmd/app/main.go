package main

import (
	"buzzline/internal/app"
	"buzzline/pkg/cache"
	"buzzline/pkg/config"
	"buzzline/pkg/database"
	"buzzline/pkg/logger"
	"buzzline/pkg/queue"

	"github.com/gin-gonic/gin"
)

// @title           Buzzline Notification Service API
// @version         1.0
// @description     REST API for user notifications and notification settings.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Event ingestion is supplementary; the REST surface works without it.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, event ingestion disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, redisClient, queueClient)
}
