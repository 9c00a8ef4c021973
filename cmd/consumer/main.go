package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"intelligence-srv/config"
	configIntelligence "intelligence-srv/config/intelligence"
	"intelligence-srv/config/kafka"
	"intelligence-srv/config/minio"
	"intelligence-srv/config/postgre"
	"intelligence-srv/config/rabbitmq"
	"intelligence-srv/config/redis"
	"intelligence-srv/internal/consumer"
	"intelligence-srv/internal/report"
	reportRabbit "intelligence-srv/internal/report/delivery/rabbitmq"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Intelligence Consumer Service...")

	// Kafka producer (result events)
	kafkaProducer, err := kafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
		return
	}
	defer kafka.DisconnectProducer()
	logger.Info(ctx, "Kafka producer initialized")

	// Kafka consumer group (batch completed events)
	batchGroup, err := kafka.ConnectConsumer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to join Kafka consumer group: %v", err)
		return
	}
	defer kafka.DisconnectConsumer()
	logger.Infof(ctx, "Kafka consumer group %s joined", cfg.Kafka.GroupID)

	// Redis
	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer redis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect()
	logger.Info(ctx, "PostgreSQL client initialized")

	// MinIO
	minioClient, err := minio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer minio.Disconnect()
	logger.Info(ctx, "MinIO client initialized")

	// RabbitMQ (optional)
	var alerts report.AlertPublisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Warnf(ctx, "RabbitMQ not available (alerts disabled): %v", err)
		} else {
			defer rabbitmq.Disconnect()
			if alerts, err = reportRabbit.New(logger, conn, cfg.RabbitMQ.AlertExchange); err != nil {
				logger.Warnf(ctx, "Alert exchange not available (alerts disabled): %v", err)
				alerts = nil
			} else {
				logger.Info(ctx, "RabbitMQ alert publisher initialized")
			}
		}
	}

	// Analysis engine
	engine, err := configIntelligence.New(cfg.Intelligence)
	if err != nil {
		logger.Errorf(ctx, "Failed to build intelligence engine: %v", err)
		return
	}

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:          logger,
		KafkaConfig:     cfg.Kafka,
		SchedulerConfig: cfg.Scheduler,
		MetricsAddr:     cfg.Metrics.Addr,
		RedisClient:     redisClient,
		PostgresDB:      postgresDB,
		MinIOClient:     minioClient,
		BatchGroup:      batchGroup,
		KafkaProducer:   kafkaProducer,
		AlertPublisher:  alerts,
		Engine:          engine,
		Metrics:         metrics.New(),
		ReportConfig:    configIntelligence.ReportConfig(cfg),
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server stopped gracefully")
}
