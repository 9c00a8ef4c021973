package http

import (
	"encoding/json"
	"strings"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/paginator"
	"intelligence-srv/pkg/response"
)

type generateReportReq struct {
	Title      string   `json:"title"`
	SourceURLs []string `json:"source_urls" binding:"required,min=1"`
	Movie      string   `json:"movie"`
	Hero       string   `json:"hero"`
	Director   string   `json:"director"`
}

func (r generateReportReq) validate() error {
	if len(r.SourceURLs) > report.MaxSourceURLs {
		return errTooManySources
	}
	for _, u := range r.SourceURLs {
		if !strings.HasPrefix(strings.TrimSpace(u), "s3://") {
			return errInvalidSourceURL
		}
	}
	return nil
}

func (r generateReportReq) toInput() report.GenerateInput {
	return report.GenerateInput{
		Title:      r.Title,
		SourceURLs: r.SourceURLs,
		Subject: intelligence.Subject{
			Movie:    r.Movie,
			Hero:     r.Hero,
			Director: r.Director,
		},
	}
}

type reportIDReq struct {
	ReportID string
}

type listReportsReq struct {
	Status string
	Page   int
	Limit  int
}

func (r listReportsReq) validate() error {
	switch r.Status {
	case "", report.StatusProcessing, report.StatusCompleted, report.StatusFailed:
		return nil
	}
	return errInvalidStatus
}

func (r listReportsReq) toInput() report.ListReportsInput {
	return report.ListReportsInput{
		Status:        r.Status,
		PaginateQuery: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

type generateReportResp struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type reportResp struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id,omitempty"`
	Title            string             `json:"title,omitempty"`
	Source           string             `json:"source"`
	BatchID          string             `json:"batch_id,omitempty"`
	Movie            string             `json:"movie,omitempty"`
	Hero             string             `json:"hero,omitempty"`
	Director         string             `json:"director,omitempty"`
	SourceURLs       []string           `json:"source_urls"`
	Status           string             `json:"status"`
	ErrorMessage     string             `json:"error_message,omitempty"`
	FileSizeBytes    int64              `json:"file_size_bytes,omitempty"`
	TotalMentions    int                `json:"total_mentions"`
	NegativeMentions int                `json:"negative_mentions"`
	SkippedRecords   int                `json:"skipped_records"`
	SpikeDetected    bool               `json:"spike_detected"`
	AttackerCount    int                `json:"attacker_count"`
	GenerationTimeMs int64              `json:"generation_time_ms,omitempty"`
	CompletedAt      *response.DateTime `json:"completed_at,omitempty"`
	CreatedAt        response.DateTime  `json:"created_at"`
}

type listReportsResp struct {
	Reports   []reportResp                `json:"reports"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

type downloadResp struct {
	DownloadURL string            `json:"download_url"`
	ExpiresAt   response.DateTime `json:"expires_at"`
	FileName    string            `json:"file_name"`
	FileSize    int64             `json:"file_size"`
}

func (h *handler) newGenerateReportResp(o report.GenerateOutput) generateReportResp {
	return generateReportResp{
		ReportID: o.ReportID,
		Status:   o.Status,
		Message:  o.Message,
	}
}

func (h *handler) newReportResp(o report.ReportOutput) reportResp {
	resp := reportResp{
		ID:               o.ID,
		UserID:           o.UserID,
		Title:            o.Title,
		Source:           o.Source,
		BatchID:          o.BatchID,
		Movie:            o.Subject.Movie,
		Hero:             o.Subject.Hero,
		Director:         o.Subject.Director,
		SourceURLs:       o.SourceURLs,
		Status:           o.Status,
		ErrorMessage:     o.ErrorMessage,
		FileSizeBytes:    o.FileSizeBytes,
		TotalMentions:    o.TotalMentions,
		NegativeMentions: o.NegativeMentions,
		SkippedRecords:   o.SkippedRecords,
		SpikeDetected:    o.SpikeDetected,
		AttackerCount:    o.AttackerCount,
		GenerationTimeMs: o.GenerationTimeMs,
		CreatedAt:        response.DateTime(o.CreatedAt),
	}
	if resp.SourceURLs == nil {
		resp.SourceURLs = []string{}
	}
	if o.CompletedAt != nil {
		completed := response.DateTime(*o.CompletedAt)
		resp.CompletedAt = &completed
	}
	return resp
}

func (h *handler) newListReportsResp(o report.ListReportsOutput) listReportsResp {
	resp := listReportsResp{
		Reports:   make([]reportResp, 0, len(o.Reports)),
		Paginator: o.Paginator.ToResponse(),
	}
	for _, r := range o.Reports {
		resp.Reports = append(resp.Reports, h.newReportResp(r))
	}
	return resp
}

// newContentResp passes the stored report JSON through untouched.
func (h *handler) newContentResp(o report.ContentOutput) json.RawMessage {
	return o.Content
}

func (h *handler) newDownloadResp(o report.DownloadOutput) downloadResp {
	return downloadResp{
		DownloadURL: o.DownloadURL,
		ExpiresAt:   response.DateTime(o.ExpiresAt),
		FileName:    o.FileName,
		FileSize:    o.FileSize,
	}
}
