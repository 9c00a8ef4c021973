package report

import (
	"context"

	"intelligence-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Generate(ctx context.Context, sc model.Scope, input GenerateInput) (GenerateOutput, error)
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)
	GetReport(ctx context.Context, sc model.Scope, input GetReportInput) (ReportOutput, error)
	ListReports(ctx context.Context, sc model.Scope, input ListReportsInput) (ListReportsOutput, error)
	GetContent(ctx context.Context, sc model.Scope, input GetContentInput) (ContentOutput, error)
	DownloadReport(ctx context.Context, sc model.Scope, input DownloadReportInput) (DownloadOutput, error)
}

// Producer publishes run results to the event stream.
type Producer interface {
	PublishResult(ctx context.Context, event ResultEvent) error
}

// AlertPublisher fans alerts out to on-call consumers.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert Alert) error
}
