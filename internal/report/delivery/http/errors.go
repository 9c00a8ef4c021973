package http

import (
	"errors"
	"net/http"

	"intelligence-srv/internal/report"
	pkgErrors "intelligence-srv/pkg/errors"
)

var (
	errInvalidRequest      = pkgErrors.NewHTTPError(40000, "Invalid request")
	errSourceRequired      = pkgErrors.NewHTTPError(40001, "At least one source URL is required")
	errInvalidSourceURL    = pkgErrors.NewHTTPError(40002, "Source URLs must look like s3://bucket/object")
	errTooManySources      = pkgErrors.NewHTTPError(40003, "Too many source files for one report")
	errReportNotCompleted  = pkgErrors.NewHTTPError(40004, "Report is not completed yet")
	errInvalidStatus       = pkgErrors.NewHTTPError(40005, "Invalid status filter")
	errSourceNotFound      = pkgErrors.NewHTTPErrorWithStatus(http.StatusNotFound, 40401, "Source files not found")
	errReportNotFound      = pkgErrors.NewHTTPErrorWithStatus(http.StatusNotFound, 40402, "Report not found")
	errDuplicateProcessing = pkgErrors.NewHTTPErrorWithStatus(http.StatusConflict, 40901, "Report is already being processed")
	errGenerationFailed    = pkgErrors.NewHTTPErrorWithStatus(http.StatusInternalServerError, 50001, "Report generation failed")
	errContentUnavailable  = pkgErrors.NewHTTPErrorWithStatus(http.StatusInternalServerError, 50002, "Report content is unavailable")
	errDownloadURLFailed   = pkgErrors.NewHTTPErrorWithStatus(http.StatusInternalServerError, 50003, "Failed to generate download URL")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrSourceRequired):
		return errSourceRequired
	case errors.Is(err, report.ErrInvalidSourceURL):
		return errInvalidSourceURL
	case errors.Is(err, report.ErrTooManySources):
		return errTooManySources
	case errors.Is(err, report.ErrSourceNotFound):
		return errSourceNotFound
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrReportNotCompleted):
		return errReportNotCompleted
	case errors.Is(err, report.ErrDuplicateProcessing):
		return errDuplicateProcessing
	case errors.Is(err, report.ErrGenerationFailed):
		return errGenerationFailed
	case errors.Is(err, report.ErrContentUnavailable):
		return errContentUnavailable
	case errors.Is(err, report.ErrDownloadURLFailed):
		return errDownloadURLFailed
	default:
		panic(err)
	}
}
