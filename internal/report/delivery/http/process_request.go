package http

import (
	"strconv"
	"strings"

	"intelligence-srv/internal/model"
	"intelligence-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processGenerateReportRequest(c *gin.Context) (generateReportReq, model.Scope, error) {
	var req generateReportReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processGenerateReportRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, errInvalidRequest
	}

	if err := req.validate(); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processGenerateReportRequest: validate failed: %v", err)
		return req, model.Scope{}, err
	}

	sc, _ := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processReportIDRequest(c *gin.Context) (reportIDReq, model.Scope, error) {
	req := reportIDReq{ReportID: strings.TrimSpace(c.Param("report_id"))}
	if req.ReportID == "" {
		return req, model.Scope{}, errInvalidRequest
	}

	sc, _ := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processListReportsRequest(c *gin.Context) (listReportsReq, model.Scope, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return listReportsReq{}, model.Scope{}, errInvalidRequest
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return listReportsReq{}, model.Scope{}, errInvalidRequest
	}

	req := listReportsReq{
		Status: strings.ToUpper(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	if err := req.validate(); err != nil {
		return req, model.Scope{}, err
	}

	sc, _ := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
