package report

import "errors"

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportNotCompleted  = errors.New("report is not completed")
	ErrSourceRequired      = errors.New("at least one source url is required")
	ErrInvalidSourceURL    = errors.New("source url must look like s3://bucket/object")
	ErrTooManySources      = errors.New("too many source urls")
	ErrSourceNotFound      = errors.New("source object not found")
	ErrGenerationFailed    = errors.New("report generation failed")
	ErrDuplicateProcessing = errors.New("duplicate report is already being processed")
	ErrContentUnavailable  = errors.New("report content is unavailable")
	ErrDownloadURLFailed   = errors.New("failed to generate download URL")
)
