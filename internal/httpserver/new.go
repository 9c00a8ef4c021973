package httpserver

import (
	"database/sql"
	"errors"

	"intelligence-srv/config"
	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/middleware"
	"intelligence-srv/internal/report"
	reportUsecase "intelligence-srv/internal/report/usecase"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"
	"intelligence-srv/pkg/minio"
	pkgRedis "intelligence-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Storage
	postgresDB  *sql.DB
	redisClient pkgRedis.IRedis
	minioClient minio.MinIO

	// Messaging (optional)
	resultProducer report.Producer
	alertPublisher report.AlertPublisher

	// Report pipeline
	engine       *intelligence.Engine
	metrics      metrics.Recorder
	reportConfig reportUsecase.Config

	// Authentication & Security Configuration
	verifier     middleware.Verifier
	cookieConfig config.CookieConfig
	rateLimit    config.RateLimitConfig
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Storage
	PostgresDB  *sql.DB
	RedisClient pkgRedis.IRedis
	MinIOClient minio.MinIO

	// Messaging (optional)
	ResultProducer report.Producer
	AlertPublisher report.AlertPublisher

	// Report pipeline
	Engine       *intelligence.Engine
	Metrics      metrics.Recorder
	ReportConfig reportUsecase.Config

	// Authentication & Security Configuration
	Verifier     middleware.Verifier
	CookieConfig config.CookieConfig
	RateLimit    config.RateLimitConfig
}

// New creates a new HTTPServer instance with the provided configuration.
func New(cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Nop()
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		l:           cfg.Logger,
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,
		minioClient: cfg.MinIOClient,

		resultProducer: cfg.ResultProducer,
		alertPublisher: cfg.AlertPublisher,

		engine:       cfg.Engine,
		metrics:      recorder,
		reportConfig: cfg.ReportConfig,

		verifier:     cfg.Verifier,
		cookieConfig: cfg.CookieConfig,
		rateLimit:    cfg.RateLimit,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.minioClient == nil {
		return errors.New("minioClient is required")
	}
	if srv.engine == nil {
		return errors.New("engine is required")
	}
	if srv.verifier == nil {
		return errors.New("verifier is required")
	}

	return nil
}
