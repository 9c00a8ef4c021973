package http

import (
	"intelligence-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	reports := r.Group("/api/v1/reports")
	reports.Use(mw.Auth())
	{
		reports.POST("/generate", mw.RateLimit(), h.GenerateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:report_id", h.GetReport)
		reports.GET("/:report_id/content", h.GetReportContent)
		reports.GET("/:report_id/download", h.DownloadReport)
	}
}
