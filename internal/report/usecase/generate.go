package usecase

import (
	"context"
	"fmt"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/minio"

	"github.com/google/uuid"
)

// Generate starts a report run in the background, or returns the run that
// already answers the same parameters.
// Flow: resolve sources → hash params → lock → dedup → create row → run.
func (uc *implUseCase) Generate(ctx context.Context, sc model.Scope, input report.GenerateInput) (report.GenerateOutput, error) {
	sources, err := uc.resolveSources(ctx, input.SourceURLs)
	if err != nil {
		return report.GenerateOutput{}, err
	}

	paramsHash, err := paramsHash(sources, input.Subject)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Generate: Failed to hash params: %v", err)
		return report.GenerateOutput{}, report.ErrGenerationFailed
	}

	// Two identical requests racing past the dedup lookup would both
	// create a row; the lock serializes them.
	locked, err := uc.cache.AcquireLock(ctx, paramsHash, generateLockTTL)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.Generate: lock unavailable, continuing without it: %v", err)
	} else if !locked {
		return report.GenerateOutput{}, report.ErrDuplicateProcessing
	} else {
		defer func() {
			if err := uc.cache.ReleaseLock(context.WithoutCancel(ctx), paramsHash); err != nil {
				uc.l.Warnf(ctx, "report.usecase.Generate: Failed to release lock: %v", err)
			}
		}()
	}

	if out, ok, err := uc.findReusable(ctx, paramsHash); err != nil {
		return report.GenerateOutput{}, err
	} else if ok {
		return out, nil
	}

	rpt, err := uc.repo.CreateReport(ctx, repository.CreateReportOptions{
		ID:         uuid.New().String(),
		UserID:     sc.UserID,
		Title:      input.Title,
		Source:     model.SourceAPI,
		ParamsHash: paramsHash,
		SourceURLs: objectURLStrings(sources),
		Movie:      input.Subject.Movie,
		Hero:       input.Subject.Hero,
		Director:   input.Subject.Director,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Generate: Failed to create report: %v", err)
		return report.GenerateOutput{}, report.ErrGenerationFailed
	}

	go uc.generateInBackground(rpt, sources, input.Subject)

	return report.GenerateOutput{
		ReportID: rpt.ID,
		Status:   report.StatusProcessing,
		Message:  "Report generation started",
	}, nil
}

// findReusable returns a PROCESSING run or a COMPLETED one inside the dedup window.
func (uc *implUseCase) findReusable(ctx context.Context, hash string) (report.GenerateOutput, bool, error) {
	existing, err := uc.repo.FindByParamsHash(ctx, repository.FindByParamsHashOptions{
		ParamsHash: hash,
		Status:     report.StatusProcessing,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.findReusable: Failed to check processing report: %v", err)
		return report.GenerateOutput{}, false, report.ErrGenerationFailed
	}
	if existing != nil {
		return report.GenerateOutput{
			ReportID: existing.ID,
			Status:   existing.Status,
			Message:  "Report is already being generated",
		}, true, nil
	}

	completed, err := uc.repo.FindByParamsHash(ctx, repository.FindByParamsHashOptions{
		ParamsHash:   hash,
		Status:       report.StatusCompleted,
		CreatedAfter: uc.now().Add(-uc.config.DedupWindow),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.findReusable: Failed to check completed report: %v", err)
		return report.GenerateOutput{}, false, report.ErrGenerationFailed
	}
	if completed != nil {
		return report.GenerateOutput{
			ReportID: completed.ID,
			Status:   completed.Status,
			Message:  "Report already completed",
		}, true, nil
	}
	return report.GenerateOutput{}, false, nil
}

// generateInBackground owns its context and must record its own failures.
func (uc *implUseCase) generateInBackground(rpt model.Report, sources []minio.ObjectURL, subject intelligence.Subject) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "report.usecase.generateInBackground: panic recovered: %v", r)
			uc.fail(ctx, rpt, fmt.Errorf("internal panic: %v", r))
		}
	}()

	uc.l.Infof(ctx, "report.usecase.generateInBackground: Starting report %s over %d sources", rpt.ID, len(sources))
	if _, err := uc.execute(ctx, rpt, sources, subject); err != nil {
		uc.l.Errorf(ctx, "report.usecase.generateInBackground: report %s failed: %v", rpt.ID, err)
	}
}
