package repository

import (
	"context"
	"time"

	"intelligence-srv/internal/model"
)

//go:generate mockery --name ReportRepository
type ReportRepository interface {
	CreateReport(ctx context.Context, opts CreateReportOptions) (model.Report, error)
	GetReportByID(ctx context.Context, id string) (model.Report, error)
	// FindByParamsHash returns nil when no row matches.
	FindByParamsHash(ctx context.Context, opts FindByParamsHashOptions) (*model.Report, error)
	UpdateCompleted(ctx context.Context, opts UpdateCompletedOptions) error
	UpdateFailed(ctx context.Context, opts UpdateFailedOptions) error
	ListReports(ctx context.Context, opts ListReportsOptions) ([]model.Report, error)
	// CountReports applies the same filters as ListReports without paging.
	CountReports(ctx context.Context, opts ListReportsOptions) (int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	ReportRepository
}

// CacheRepository holds rendered report JSON and generation locks.
//
//go:generate mockery --name CacheRepository
type CacheRepository interface {
	// GetContent returns ErrCacheMiss when nothing is cached.
	GetContent(ctx context.Context, reportID string) ([]byte, error)
	SetContent(ctx context.Context, reportID string, content []byte, ttl time.Duration) error
	// AcquireLock is false when another caller already holds key.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
