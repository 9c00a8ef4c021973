package intelligence

import (
	"time"

	"intelligence-srv/config"
	reportUsecase "intelligence-srv/internal/report/usecase"
)

// ReportConfig maps the storage and intelligence sections onto report run settings.
func ReportConfig(cfg *config.Config) reportUsecase.Config {
	return reportUsecase.Config{
		Bucket:          cfg.MinIO.Bucket,
		LoadConcurrency: cfg.Intelligence.LoadConcurrency,
		CacheTTL:        time.Duration(cfg.Intelligence.CacheTTL) * time.Second,
		DedupWindow:     time.Duration(cfg.Intelligence.DedupWindow) * time.Second,
	}
}
