package http

import (
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// GenerateReport starts an asynchronous run.
// POST /api/v1/reports/generate
func (h *handler) GenerateReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGenerateReportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.Generate(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GenerateReport: usecase Generate failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newGenerateReportResp(o))
}

// ListReports pages through report runs, newest first.
// GET /api/v1/reports?status=&page=&limit=
func (h *handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReportsRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: usecase ListReports failed: %v", err)
		response.Error(c, err)
		return
	}

	response.OK(c, h.newListReportsResp(o))
}

// GetReport returns status and headline numbers of one run.
// GET /api/v1/reports/:report_id
func (h *handler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processReportIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.GetReport(ctx, sc, report.GetReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: usecase GetReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// GetReportContent returns the full intelligence report JSON.
// GET /api/v1/reports/:report_id/content
func (h *handler) GetReportContent(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processReportIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.GetContent(ctx, sc, report.GetContentInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReportContent: usecase GetContent failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newContentResp(o))
}

// DownloadReport returns a presigned URL for the report file.
// GET /api/v1/reports/:report_id/download
func (h *handler) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processReportIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.DownloadReport(ctx, sc, report.DownloadReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadReport: usecase DownloadReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDownloadResp(o))
}
