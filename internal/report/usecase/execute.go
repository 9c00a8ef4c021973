package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/metrics"
	"intelligence-srv/pkg/minio"
)

// execute runs the engine over sources and records the outcome on rpt.
// Every exit path leaves the row COMPLETED or FAILED.
func (uc *implUseCase) execute(ctx context.Context, rpt model.Report, sources []minio.ObjectURL, subject intelligence.Subject) (report.ProcessOutput, error) {
	start := uc.now()

	session := uc.engine.Start(subject)
	if err := uc.loadSources(ctx, session, sources); err != nil {
		session.End()
		uc.fail(ctx, rpt, err)
		return report.ProcessOutput{ReportID: rpt.ID}, err
	}
	result := session.End()

	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		uc.fail(ctx, rpt, fmt.Errorf("marshal report: %w", err))
		return report.ProcessOutput{ReportID: rpt.ID}, err
	}

	obj := minio.ObjectURL{Bucket: uc.config.Bucket, Object: uc.config.ReportPrefix + rpt.ID + ".json"}
	if _, err := uc.minio.UploadFile(ctx, &minio.UploadRequest{
		BucketName:  obj.Bucket,
		ObjectName:  obj.Object,
		Reader:      bytes.NewReader(content),
		Size:        int64(len(content)),
		ContentType: minio.ContentTypeJSON,
		Metadata: map[string]string{
			"report-id": rpt.ID,
			"movie":     subject.Movie,
		},
	}); err != nil {
		uc.fail(ctx, rpt, fmt.Errorf("upload report: %w", err))
		return report.ProcessOutput{ReportID: rpt.ID}, err
	}

	finished := uc.now()
	took := finished.Sub(start)
	out := report.ProcessOutput{
		ReportID:         rpt.ID,
		TotalMentions:    result.Instances.TotalMentions,
		NegativeMentions: result.Instances.NegativeMentions,
		Skipped:          result.Diagnostics.Skipped,
		SpikeDetected:    result.SpikeAlert != nil,
		AttackerCount:    len(result.AttackCoordination),
		Duration:         took,
	}

	if err := uc.repo.UpdateCompleted(ctx, repository.UpdateCompletedOptions{
		ReportID:         rpt.ID,
		FileURL:          obj.String(),
		FileSizeBytes:    int64(len(content)),
		TotalMentions:    out.TotalMentions,
		NegativeMentions: out.NegativeMentions,
		SkippedRecords:   out.Skipped,
		SpikeDetected:    out.SpikeDetected,
		AttackerCount:    out.AttackerCount,
		GenerationTimeMs: took.Milliseconds(),
		CompletedAt:      finished,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.execute: Failed to mark report %s completed: %v", rpt.ID, err)
		uc.fail(ctx, rpt, err)
		return out, err
	}

	if err := uc.cache.SetContent(ctx, rpt.ID, content, uc.config.CacheTTL); err != nil {
		uc.l.Warnf(ctx, "report.usecase.execute: Failed to cache report %s: %v", rpt.ID, err)
	}

	uc.metrics.ObserveRun(metrics.StatusCompleted, took)
	uc.metrics.AddIngested(out.TotalMentions)
	for reason, n := range result.Diagnostics.ByReason {
		uc.metrics.AddSkipped(string(reason), n)
	}

	uc.publishResult(ctx, report.ResultEvent{
		ReportID:         rpt.ID,
		BatchID:          rpt.BatchID,
		Status:           report.StatusCompleted,
		FileURL:          obj.String(),
		TotalMentions:    out.TotalMentions,
		NegativeMentions: out.NegativeMentions,
		SpikeDetected:    out.SpikeDetected,
		AttackerCount:    out.AttackerCount,
		FinishedAt:       finished,
	})
	for _, alert := range buildAlerts(rpt.ID, result) {
		uc.publishAlert(ctx, alert)
	}

	uc.l.Infof(ctx, "report.usecase.execute: Report %s completed in %s (%d mentions, %d negative, %d skipped)",
		rpt.ID, took, out.TotalMentions, out.NegativeMentions, out.Skipped)
	return out, nil
}

// fail marks rpt FAILED and announces it. Errors here are only logged.
// It runs even when ctx is already cancelled so the row never stays PROCESSING.
func (uc *implUseCase) fail(ctx context.Context, rpt model.Report, cause error) {
	ctx = context.WithoutCancel(ctx)
	if err := uc.repo.UpdateFailed(ctx, repository.UpdateFailedOptions{
		ReportID:     rpt.ID,
		ErrorMessage: cause.Error(),
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.fail: Failed to mark report %s failed: %v", rpt.ID, err)
	}

	var took time.Duration
	if !rpt.CreatedAt.IsZero() {
		took = uc.now().Sub(rpt.CreatedAt)
	}
	uc.metrics.ObserveRun(metrics.StatusFailed, took)

	uc.publishResult(ctx, report.ResultEvent{
		ReportID:     rpt.ID,
		BatchID:      rpt.BatchID,
		Status:       report.StatusFailed,
		ErrorMessage: cause.Error(),
		FinishedAt:   uc.now(),
	})
}

func (uc *implUseCase) publishResult(ctx context.Context, evt report.ResultEvent) {
	if uc.producer == nil {
		return
	}
	if err := uc.producer.PublishResult(ctx, evt); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishResult: Failed to publish result for %s: %v", evt.ReportID, err)
	}
}

func (uc *implUseCase) publishAlert(ctx context.Context, alert report.Alert) {
	if uc.alerts == nil {
		return
	}
	if err := uc.alerts.PublishAlert(ctx, alert); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishAlert: Failed to publish %s alert for %s: %v", alert.Kind, alert.ReportID, err)
	}
}

func buildAlerts(reportID string, r intelligence.Report) []report.Alert {
	subject := intelligence.Subject{Movie: r.Movie, Hero: r.Hero, Director: r.Director}

	var alerts []report.Alert
	if r.SpikeAlert != nil {
		spike := *r.SpikeAlert
		alerts = append(alerts, report.Alert{
			Kind:        report.AlertKindSpike,
			ReportID:    reportID,
			Subject:     subject,
			Spike:       &spike,
			GeneratedAt: r.GeneratedAt,
		})
	}
	if len(r.AttackCoordination) > 0 {
		alerts = append(alerts, report.Alert{
			Kind:        report.AlertKindCoordination,
			ReportID:    reportID,
			Subject:     subject,
			Attackers:   r.AttackCoordination,
			GeneratedAt: r.GeneratedAt,
		})
	}
	return alerts
}
