package usecase

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/minio"
)

// paramsHash identifies a run by its sorted sources and subject.
func paramsHash(sources []minio.ObjectURL, subject intelligence.Subject) (string, error) {
	data := map[string]interface{}{
		"sources":  objectURLStrings(sources),
		"movie":    subject.Movie,
		"hero":     subject.Hero,
		"director": subject.Director,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(b)), nil
}

func objectURLStrings(sources []minio.ObjectURL) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.String()
	}
	return out
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// downloadName is the attachment name offered for a report.
func downloadName(rpt model.Report) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(rpt.Movie), "_"), "_")
	if base == "" {
		return fmt.Sprintf("intelligence_%s.json", rpt.ID)
	}
	return fmt.Sprintf("intelligence_%s_%s.json", base, rpt.CreatedAt.UTC().Format("20060102_1504"))
}

func toReportOutput(rpt model.Report) report.ReportOutput {
	return report.ReportOutput{
		ID:      rpt.ID,
		UserID:  rpt.UserID,
		Title:   rpt.Title,
		Source:  rpt.Source,
		BatchID: rpt.BatchID,
		Subject: intelligence.Subject{
			Movie:    rpt.Movie,
			Hero:     rpt.Hero,
			Director: rpt.Director,
		},
		SourceURLs:       rpt.SourceURLs,
		Status:           rpt.Status,
		ErrorMessage:     rpt.ErrorMessage,
		FileSizeBytes:    rpt.FileSizeBytes,
		TotalMentions:    rpt.TotalMentions,
		NegativeMentions: rpt.NegativeMentions,
		SkippedRecords:   rpt.SkippedRecords,
		SpikeDetected:    rpt.SpikeDetected,
		AttackerCount:    rpt.AttackerCount,
		GenerationTimeMs: rpt.GenerationTimeMs,
		CompletedAt:      rpt.CompletedAt,
		CreatedAt:        rpt.CreatedAt,
	}
}
