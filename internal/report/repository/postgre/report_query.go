package postgre

import (
	"fmt"
	"strings"

	"intelligence-srv/internal/report/repository"
)

const reportTable = "intelligence_reports"

const reportColumns = `id, user_id, title, source, batch_id, params_hash, source_urls,
	movie, hero, director, status, error_message, file_url, file_size_bytes,
	total_mentions, negative_mentions, skipped_records, spike_detected, attacker_count,
	generation_time_ms, completed_at, created_at, updated_at`

const insertReportQuery = `INSERT INTO ` + reportTable + ` (
	id, user_id, title, source, batch_id, params_hash, source_urls,
	movie, hero, director, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
RETURNING ` + reportColumns

const selectReportByIDQuery = `SELECT ` + reportColumns + ` FROM ` + reportTable + ` WHERE id = $1`

const updateCompletedQuery = `UPDATE ` + reportTable + ` SET
	status = 'COMPLETED', file_url = $2, file_size_bytes = $3,
	total_mentions = $4, negative_mentions = $5, skipped_records = $6,
	spike_detected = $7, attacker_count = $8, generation_time_ms = $9,
	completed_at = $10, updated_at = $10, error_message = ''
WHERE id = $1`

const updateFailedQuery = `UPDATE ` + reportTable + ` SET
	status = 'FAILED', error_message = $2, updated_at = $3
WHERE id = $1`

// queryBuilder numbers placeholders as conditions are added.
type queryBuilder struct {
	where []string
	args  []any
}

func (b *queryBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.where = append(b.where, fmt.Sprintf(cond, len(b.args)))
}

func (b *queryBuilder) clause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// buildFindByParamsHashQuery - most recent matching row first.
func buildFindByParamsHashQuery(opts repository.FindByParamsHashOptions) (string, []any) {
	b := &queryBuilder{}
	b.add("params_hash = $%d", opts.ParamsHash)
	if opts.Status != "" {
		b.add("status = $%d", opts.Status)
	}
	if !opts.CreatedAfter.IsZero() {
		b.add("created_at > $%d", opts.CreatedAfter)
	}
	q := "SELECT " + reportColumns + " FROM " + reportTable + b.clause() + " ORDER BY created_at DESC LIMIT 1"
	return q, b.args
}

func listFilters(opts repository.ListReportsOptions) *queryBuilder {
	b := &queryBuilder{}
	if opts.UserID != "" {
		b.add("user_id = $%d", opts.UserID)
	}
	if opts.Status != "" {
		b.add("status = $%d", opts.Status)
	}
	return b
}

func buildCountReportsQuery(opts repository.ListReportsOptions) (string, []any) {
	b := listFilters(opts)
	return "SELECT COUNT(*) FROM " + reportTable + b.clause(), b.args
}

// buildListReportsQuery - filters, newest first, then pagination.
func buildListReportsQuery(opts repository.ListReportsOptions) (string, []any) {
	b := listFilters(opts)
	q := "SELECT " + reportColumns + " FROM " + reportTable + b.clause() + " ORDER BY created_at DESC, id"

	if opts.Limit > 0 {
		b.args = append(b.args, opts.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(b.args))
	}
	if opts.Offset > 0 {
		b.args = append(b.args, opts.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(b.args))
	}
	return q, b.args
}
