package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/log"

	"github.com/robfig/cron/v3"
)

// Config describes the periodic run.
type Config struct {
	// Spec is a standard five-field cron expression.
	Spec string
	// SourcePrefix is an s3://bucket/prefix whose batches feed every run.
	SourcePrefix string
	Subject      intelligence.Subject
}

// Scheduler runs a report over SourcePrefix on a cron schedule.
// A run still in progress causes the next tick to be skipped.
type Scheduler struct {
	l      log.Logger
	uc     report.UseCase
	cron   *cron.Cron
	config Config
	now    func() time.Time
}

func New(l log.Logger, uc report.UseCase, cfg Config) (*Scheduler, error) {
	if uc == nil {
		return nil, errors.New("usecase is required")
	}
	if !strings.HasPrefix(cfg.SourcePrefix, "s3://") {
		return nil, fmt.Errorf("source prefix %q must start with s3://", cfg.SourcePrefix)
	}
	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cfg.Spec, err)
	}
	if !strings.HasSuffix(cfg.SourcePrefix, "/") {
		cfg.SourcePrefix += "/"
	}

	logger := cronLogger{l: l}
	return &Scheduler{
		l:      l,
		uc:     uc,
		cron:   cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		config: cfg,
		now:    time.Now,
	}, nil
}
