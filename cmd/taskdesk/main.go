package main

import (
	"context"
	"net/http"
	"time"

	config "github.com/davicafu/taskdesk/internal/config"
	infraEvents "github.com/davicafu/taskdesk/internal/infra/events"
	taskApp "github.com/davicafu/taskdesk/internal/task/application"
	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	taskHttp "github.com/davicafu/taskdesk/internal/task/infra/inbound/http"
	taskCache "github.com/davicafu/taskdesk/internal/task/infra/outbound/cache"
	taskRepo "github.com/davicafu/taskdesk/internal/task/infra/outbound/db/mongodb"

	"github.com/davicafu/taskdesk/pkg/logger"
	sharedBus "github.com/davicafu/taskdesk/shared/platform/bus"
	sharedCache "github.com/davicafu/taskdesk/shared/platform/cache"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- DB ----------------
	// El cliente del almacén se construye aquí y se inyecta explícitamente:
	// nada de singletons globales.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	repo, err := taskRepo.NewTaskRepoMongoDB(connectCtx, mongoClient, cfg.MongoDatabase, log)
	if err != nil {
		log.Fatal("failed to initialize task repository", zap.Error(err))
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = taskCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = taskCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Events ---------------
	var eventTaskPublisher sharedBus.EventPublisher

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		taskWriter := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopicTask,
		})
		defer taskWriter.Close()

		eventTaskPublisher = infraEvents.NewKafkaPublisher(taskWriter, log)
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")
		eventTaskPublisher = infraEvents.NewInMemoryEventBus(taskDomain.TaskTopic)
	}

	// --------------- Servicio --------------
	taskService := taskApp.NewTaskService(repo, cacheInstance, eventTaskPublisher, log)

	// ---------------- HTTP ----------------
	taskHandler := taskHttp.NewTaskHandler(taskService)
	router := gin.Default()
	taskHttp.RegisterTaskRoutes(router, taskHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "UP",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
			"version":   cfg.ServiceVersion,
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to taskdesk API",
			"health":  "/health",
			"api":     "/api/tasks",
		})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
