package postgre

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"

	"github.com/lib/pq"
)

// CreateReport - Insert a PROCESSING row.
func (r *implRepository) CreateReport(ctx context.Context, opts repository.CreateReportOptions) (model.Report, error) {
	row := r.db.QueryRowContext(ctx, insertReportQuery,
		opts.ID, opts.UserID, opts.Title, opts.Source, opts.BatchID, opts.ParamsHash,
		pq.Array(opts.SourceURLs), opts.Movie, opts.Hero, opts.Director,
		report.StatusProcessing, time.Now().UTC(),
	)
	rpt, err := scanReport(row)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReport: Failed to insert report: %v", err)
		return model.Report{}, repository.ErrReportCreateFailed
	}
	return rpt, nil
}

// GetReportByID - Get report by primary key.
func (r *implRepository) GetReportByID(ctx context.Context, id string) (model.Report, error) {
	rpt, err := scanReport(r.db.QueryRowContext(ctx, selectReportByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Report{}, repository.ErrReportNotFound
	}
	if err != nil {
		// malformed uuid is a lookup miss, not a server fault
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return model.Report{}, repository.ErrReportNotFound
		}
		r.l.Errorf(ctx, "report.repository.postgre.GetReportByID: Failed to get report: %v", err)
		return model.Report{}, err
	}
	return rpt, nil
}

// FindByParamsHash - Newest report with the same parameters.
func (r *implRepository) FindByParamsHash(ctx context.Context, opts repository.FindByParamsHashOptions) (*model.Report, error) {
	q, args := buildFindByParamsHashQuery(opts)
	rpt, err := scanReport(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.FindByParamsHash: Failed to find report: %v", err)
		return nil, err
	}
	return &rpt, nil
}

// UpdateCompleted - Mark report as COMPLETED with output metadata.
func (r *implRepository) UpdateCompleted(ctx context.Context, opts repository.UpdateCompletedOptions) error {
	res, err := r.db.ExecContext(ctx, updateCompletedQuery,
		opts.ReportID, opts.FileURL, opts.FileSizeBytes,
		opts.TotalMentions, opts.NegativeMentions, opts.SkippedRecords,
		opts.SpikeDetected, opts.AttackerCount, opts.GenerationTimeMs,
		opts.CompletedAt.UTC(),
	)
	return r.checkUpdated(ctx, "UpdateCompleted", res, err)
}

// UpdateFailed - Mark report as FAILED with error message.
func (r *implRepository) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	res, err := r.db.ExecContext(ctx, updateFailedQuery, opts.ReportID, opts.ErrorMessage, time.Now().UTC())
	return r.checkUpdated(ctx, "UpdateFailed", res, err)
}

func (r *implRepository) checkUpdated(ctx context.Context, op string, res sql.Result, err error) error {
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.%s: Failed to update report: %v", op, err)
		return repository.ErrReportUpdateFailed
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.%s: RowsAffected failed: %v", op, err)
		return repository.ErrReportUpdateFailed
	}
	if n == 0 {
		return repository.ErrReportNotFound
	}
	return nil
}

// ListReports - List reports with filters and pagination.
func (r *implRepository) ListReports(ctx context.Context, opts repository.ListReportsOptions) ([]model.Report, error) {
	q, args := buildListReportsQuery(opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Report, 0)
	for rows.Next() {
		rpt, err := scanReport(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to scan report: %v", err)
			return nil, err
		}
		result = append(result, rpt)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListReports: rows error: %v", err)
		return nil, err
	}
	return result, nil
}

// CountReports - Count reports matching the list filters.
func (r *implRepository) CountReports(ctx context.Context, opts repository.ListReportsOptions) (int64, error) {
	q, args := buildCountReportsQuery(opts)
	var total int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CountReports: Failed to count reports: %v", err)
		return 0, err
	}
	return total, nil
}
