package usecase

import (
	"context"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"

	"github.com/google/uuid"
)

// Process runs a report to completion before returning.
// Used by the batch consumer and the scheduler, which have no caller to poll.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input report.ProcessInput) (report.ProcessOutput, error) {
	sources, err := uc.resolveSources(ctx, input.SourceURLs)
	if err != nil {
		return report.ProcessOutput{}, err
	}

	hash, err := paramsHash(sources, input.Subject)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Process: Failed to hash params: %v", err)
		return report.ProcessOutput{}, report.ErrGenerationFailed
	}

	source := input.Source
	if source == "" {
		source = model.SourceKafka
	}

	rpt, err := uc.repo.CreateReport(ctx, repository.CreateReportOptions{
		ID:         uuid.New().String(),
		UserID:     sc.UserID,
		Title:      input.Title,
		Source:     source,
		BatchID:    input.BatchID,
		ParamsHash: hash,
		SourceURLs: objectURLStrings(sources),
		Movie:      input.Subject.Movie,
		Hero:       input.Subject.Hero,
		Director:   input.Subject.Director,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Process: Failed to create report: %v", err)
		return report.ProcessOutput{}, report.ErrGenerationFailed
	}

	uc.l.Infof(ctx, "report.usecase.Process: Starting report %s (batch=%s, source=%s) over %d sources",
		rpt.ID, input.BatchID, source, len(sources))
	return uc.execute(ctx, rpt, sources, input.Subject)
}
