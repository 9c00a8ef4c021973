package kafka

import "time"

// Result event types, sent in the event_type header.
const (
	EventReportCompleted = "report.completed"
	EventReportFailed    = "report.failed"
)

// BatchCompletedMessage announces a classified comment batch in object storage.
// FileURLs wins over FileURL when both are set.
type BatchCompletedMessage struct {
	BatchID     string    `json:"batch_id"`
	Title       string    `json:"title,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	FileURLs    []string  `json:"file_urls,omitempty"`
	RecordCount int       `json:"record_count"`
	Movie       string    `json:"movie,omitempty"`
	Hero        string    `json:"hero,omitempty"`
	Director    string    `json:"director,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// ReportResultMessage is published once a run finishes.
type ReportResultMessage struct {
	ReportID         string    `json:"report_id"`
	BatchID          string    `json:"batch_id,omitempty"`
	Status           string    `json:"status"`
	FileURL          string    `json:"file_url,omitempty"`
	TotalMentions    int       `json:"total_mentions"`
	NegativeMentions int       `json:"negative_mentions"`
	SpikeDetected    bool      `json:"spike_detected"`
	AttackerCount    int       `json:"attacker_count"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	FinishedAt       time.Time `json:"finished_at"`
}
