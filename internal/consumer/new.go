package consumer

import (
	"database/sql"
	"fmt"

	"intelligence-srv/config"
	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/report"
	reportUsecase "intelligence-srv/internal/report/usecase"
	pkgKafka "intelligence-srv/pkg/kafka"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"
	"intelligence-srv/pkg/minio"
	"intelligence-srv/pkg/redis"
)

// ConsumerServer hosts the background side of the service: the batch
// consumer, the optional scheduler and a metrics listener.
type ConsumerServer struct {
	l               log.Logger
	kafkaConfig     config.KafkaConfig
	schedulerConfig config.SchedulerConfig
	metricsAddr     string

	redisClient   redis.IRedis
	postgresDB    *sql.DB
	minioClient   minio.MinIO
	batchGroup    pkgKafka.IConsumer
	kafkaProducer pkgKafka.IProducer
	alerts        report.AlertPublisher

	engine       *intelligence.Engine
	metrics      metrics.Recorder
	reportConfig reportUsecase.Config
}

type Config struct {
	Logger          log.Logger
	KafkaConfig     config.KafkaConfig
	SchedulerConfig config.SchedulerConfig
	MetricsAddr     string

	RedisClient   redis.IRedis
	PostgresDB    *sql.DB
	MinIOClient   minio.MinIO
	BatchGroup    pkgKafka.IConsumer
	KafkaProducer pkgKafka.IProducer
	// AlertPublisher is optional; without it runs do not raise alerts.
	AlertPublisher report.AlertPublisher

	Engine       *intelligence.Engine
	Metrics      metrics.Recorder
	ReportConfig reportUsecase.Config
}

// New creates a new consumer server with dependency validation
func New(cfg Config) (*ConsumerServer, error) {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Nop()
	}

	srv := &ConsumerServer{
		l:               cfg.Logger,
		kafkaConfig:     cfg.KafkaConfig,
		schedulerConfig: cfg.SchedulerConfig,
		metricsAddr:     cfg.MetricsAddr,
		redisClient:     cfg.RedisClient,
		postgresDB:      cfg.PostgresDB,
		minioClient:     cfg.MinIOClient,
		batchGroup:      cfg.BatchGroup,
		kafkaProducer:   cfg.KafkaProducer,
		alerts:          cfg.AlertPublisher,
		engine:          cfg.Engine,
		metrics:         recorder,
		reportConfig:    cfg.ReportConfig,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *ConsumerServer) validate() error {
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.kafkaConfig.BatchTopic == "" {
		return fmt.Errorf("kafka batch topic is required")
	}
	if srv.redisClient == nil {
		return fmt.Errorf("redis client is required")
	}
	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.minioClient == nil {
		return fmt.Errorf("minio client is required")
	}
	if srv.batchGroup == nil {
		return fmt.Errorf("kafka consumer group is required")
	}
	if srv.kafkaProducer == nil {
		return fmt.Errorf("kafka producer is required")
	}
	if srv.engine == nil {
		return fmt.Errorf("engine is required")
	}
	return nil
}
