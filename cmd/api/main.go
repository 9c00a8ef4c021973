package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"intelligence-srv/config"
	configIntelligence "intelligence-srv/config/intelligence"
	configKafka "intelligence-srv/config/kafka"
	configMinio "intelligence-srv/config/minio"
	configPostgre "intelligence-srv/config/postgre"
	configRabbit "intelligence-srv/config/rabbitmq"
	configRedis "intelligence-srv/config/redis"
	"intelligence-srv/internal/httpserver"
	"intelligence-srv/internal/report"
	reportProducer "intelligence-srv/internal/report/delivery/kafka/producer"
	reportRabbit "intelligence-srv/internal/report/delivery/rabbitmq"
	pkgJWT "intelligence-srv/pkg/jwt"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect()
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 5. Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 6. MinIO
	minioClient, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Infof(ctx, "MinIO connected, reports go to bucket %s", cfg.MinIO.Bucket)

	// 7. Analysis engine
	engine, err := configIntelligence.New(cfg.Intelligence)
	if err != nil {
		logger.Errorf(ctx, "Failed to build intelligence engine: %v", err)
		return
	}

	// 8. JWT
	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize JWT manager: %v", err)
		return
	}

	// 9. Result events and alerts are optional for the API
	var producer report.Producer
	if kafkaProducer, err := configKafka.ConnectProducer(cfg.Kafka); err != nil {
		logger.Warnf(ctx, "Kafka producer unavailable, result events disabled: %v", err)
	} else {
		defer configKafka.DisconnectProducer()
		producer = reportProducer.New(logger, kafkaProducer)
	}

	var alerts report.AlertPublisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := configRabbit.Connect(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Warnf(ctx, "RabbitMQ unavailable, alerts disabled: %v", err)
		} else {
			defer configRabbit.Disconnect()
			if alerts, err = reportRabbit.New(logger, conn, cfg.RabbitMQ.AlertExchange); err != nil {
				logger.Warnf(ctx, "Alert exchange unavailable, alerts disabled: %v", err)
				alerts = nil
			}
		}
	}

	// 10. HTTP server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		PostgresDB:  postgresDB,
		RedisClient: redisClient,
		MinIOClient: minioClient,

		ResultProducer: producer,
		AlertPublisher: alerts,

		Engine:       engine,
		Metrics:      metrics.New(),
		ReportConfig: configIntelligence.ReportConfig(cfg),

		Verifier:     jwtManager,
		CookieConfig: cfg.Cookie,
		RateLimit:    cfg.RateLimit,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}
}
