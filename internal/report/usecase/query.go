package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/minio"
	"intelligence-srv/pkg/paginator"
)

func (uc *implUseCase) GetReport(ctx context.Context, sc model.Scope, input report.GetReportInput) (report.ReportOutput, error) {
	rpt, err := uc.getReport(ctx, input.ReportID)
	if err != nil {
		return report.ReportOutput{}, err
	}
	return toReportOutput(rpt), nil
}

// ListReports pages the shared registry, newest first.
func (uc *implUseCase) ListReports(ctx context.Context, sc model.Scope, input report.ListReportsInput) (report.ListReportsOutput, error) {
	q := input.PaginateQuery
	q.Adjust()

	opts := repository.ListReportsOptions{
		Status: input.Status,
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	total, err := uc.repo.CountReports(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports: Failed to count reports: %v", err)
		return report.ListReportsOutput{}, err
	}

	rows, err := uc.repo.ListReports(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports: Failed to list reports: %v", err)
		return report.ListReportsOutput{}, err
	}

	out := make([]report.ReportOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, toReportOutput(r))
	}
	return report.ListReportsOutput{
		Reports:   out,
		Paginator: paginator.New(q, total, len(out)),
	}, nil
}

// GetContent serves the rendered report, from Redis when it is still cached.
func (uc *implUseCase) GetContent(ctx context.Context, sc model.Scope, input report.GetContentInput) (report.ContentOutput, error) {
	rpt, err := uc.getCompleted(ctx, input.ReportID)
	if err != nil {
		return report.ContentOutput{}, err
	}

	cached, err := uc.cache.GetContent(ctx, rpt.ID)
	if err == nil {
		return report.ContentOutput{ReportID: rpt.ID, Content: json.RawMessage(cached), Cached: true}, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		uc.l.Warnf(ctx, "report.usecase.GetContent: cache read failed for %s: %v", rpt.ID, err)
	}

	obj, err := minio.ParseObjectURL(rpt.FileURL)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetContent: Report %s has bad file url %q: %v", rpt.ID, rpt.FileURL, err)
		return report.ContentOutput{}, report.ErrContentUnavailable
	}

	reader, _, err := uc.minio.DownloadFile(ctx, &minio.DownloadRequest{BucketName: obj.Bucket, ObjectName: obj.Object})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetContent: Failed to download %s: %v", obj, err)
		return report.ContentOutput{}, report.ErrContentUnavailable
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetContent: Failed to read %s: %v", obj, err)
		return report.ContentOutput{}, report.ErrContentUnavailable
	}

	if err := uc.cache.SetContent(ctx, rpt.ID, content, uc.config.CacheTTL); err != nil {
		uc.l.Warnf(ctx, "report.usecase.GetContent: Failed to re-cache %s: %v", rpt.ID, err)
	}
	return report.ContentOutput{ReportID: rpt.ID, Content: json.RawMessage(content)}, nil
}

// DownloadReport returns a short-lived presigned URL for the report file.
func (uc *implUseCase) DownloadReport(ctx context.Context, sc model.Scope, input report.DownloadReportInput) (report.DownloadOutput, error) {
	rpt, err := uc.getCompleted(ctx, input.ReportID)
	if err != nil {
		return report.DownloadOutput{}, err
	}

	obj, err := minio.ParseObjectURL(rpt.FileURL)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Report %s has bad file url %q: %v", rpt.ID, rpt.FileURL, err)
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	fileName := downloadName(rpt)
	presigned, err := uc.minio.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: obj.Bucket,
		ObjectName: obj.Object,
		Expiry:     downloadExpiry,
		Filename:   fileName,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to presign %s: %v", obj, err)
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	return report.DownloadOutput{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
		FileName:    fileName,
		FileSize:    rpt.FileSizeBytes,
	}, nil
}

func (uc *implUseCase) getReport(ctx context.Context, id string) (model.Report, error) {
	rpt, err := uc.repo.GetReportByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return model.Report{}, report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.getReport: Failed to load report %s: %v", id, err)
		return model.Report{}, err
	}
	return rpt, nil
}

func (uc *implUseCase) getCompleted(ctx context.Context, id string) (model.Report, error) {
	rpt, err := uc.getReport(ctx, id)
	if err != nil {
		return model.Report{}, err
	}
	if rpt.Status != report.StatusCompleted {
		return model.Report{}, report.ErrReportNotCompleted
	}
	return rpt, nil
}
