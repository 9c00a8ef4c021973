package model

import "time"

// Report sources.
const (
	SourceAPI       = "API"
	SourceKafka     = "KAFKA"
	SourceScheduler = "SCHEDULER"
)

// Report is one row of the intelligence report registry.
type Report struct {
	ID         string
	UserID     string
	Title      string
	Source     string
	BatchID    string
	ParamsHash string
	SourceURLs []string

	// Subject
	Movie    string
	Hero     string
	Director string

	// Status
	Status       string // PROCESSING | COMPLETED | FAILED
	ErrorMessage string

	// Output
	FileURL       string
	FileSizeBytes int64

	// Metrics
	TotalMentions    int
	NegativeMentions int
	SkippedRecords   int
	SpikeDetected    bool
	AttackerCount    int
	GenerationTimeMs int64

	// Timestamps
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
