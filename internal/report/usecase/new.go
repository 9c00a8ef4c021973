package usecase

import (
	"time"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"
	"intelligence-srv/pkg/minio"
)

const (
	defaultReportPrefix    = "reports/"
	defaultLoadConcurrency = 4
	defaultCacheTTL        = time.Hour
	defaultDedupWindow     = time.Hour
	downloadExpiry         = 30 * time.Minute
	generateLockTTL        = 30 * time.Second
	maxLineBytes           = 1024 * 1024
)

// Config holds configuration for report runs.
type Config struct {
	// Bucket receives rendered reports.
	Bucket          string
	ReportPrefix    string
	LoadConcurrency int
	CacheTTL        time.Duration
	// DedupWindow is how long a completed run answers identical requests.
	DedupWindow time.Duration
}

type implUseCase struct {
	l        log.Logger
	repo     repository.PostgresRepository
	cache    repository.CacheRepository
	minio    minio.MinIO
	engine   *intelligence.Engine
	producer report.Producer
	alerts   report.AlertPublisher
	metrics  metrics.Recorder
	config   Config
	now      func() time.Time
}

// New creates a new report UseCase implementation.
func New(
	l log.Logger,
	repo repository.PostgresRepository,
	cache repository.CacheRepository,
	minioClient minio.MinIO,
	engine *intelligence.Engine,
	producer report.Producer,
	alerts report.AlertPublisher,
	recorder metrics.Recorder,
	cfg Config,
) report.UseCase {
	if cfg.ReportPrefix == "" {
		cfg.ReportPrefix = defaultReportPrefix
	}
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = defaultLoadConcurrency
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = defaultDedupWindow
	}
	if recorder == nil {
		recorder = metrics.Nop()
	}

	return &implUseCase{
		l:        l,
		repo:     repo,
		cache:    cache,
		minio:    minioClient,
		engine:   engine,
		producer: producer,
		alerts:   alerts,
		metrics:  recorder,
		config:   cfg,
		now:      time.Now,
	}
}
