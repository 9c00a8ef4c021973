package postgre

import (
	"intelligence-srv/internal/model"

	"github.com/lib/pq"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanReport reads one row selected with reportColumns.
func scanReport(row rowScanner) (model.Report, error) {
	var (
		r           model.Report
		urls        pq.StringArray
		completedAt pq.NullTime
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Source, &r.BatchID, &r.ParamsHash, &urls,
		&r.Movie, &r.Hero, &r.Director, &r.Status, &r.ErrorMessage, &r.FileURL, &r.FileSizeBytes,
		&r.TotalMentions, &r.NegativeMentions, &r.SkippedRecords, &r.SpikeDetected, &r.AttackerCount,
		&r.GenerationTimeMs, &completedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return model.Report{}, err
	}

	r.SourceURLs = []string(urls)
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		r.CompletedAt = &t
	}
	return r, nil
}
