package report

import (
	"encoding/json"
	"time"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/pkg/paginator"
)

const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Alert kinds published when a run finds something worth paging about.
const (
	AlertKindSpike        = "spike"
	AlertKindCoordination = "coordination"
)

// MaxSourceURLs bounds a single run.
const MaxSourceURLs = 200

type GenerateInput struct {
	Title      string
	SourceURLs []string
	Subject    intelligence.Subject
}

// ProcessInput is a synchronous run started by a batch event or the scheduler.
type ProcessInput struct {
	BatchID    string
	Source     string
	Title      string
	SourceURLs []string
	Subject    intelligence.Subject
}

type GetReportInput struct {
	ReportID string
}

type ListReportsInput struct {
	Status string
	paginator.PaginateQuery
}

type GetContentInput struct {
	ReportID string
}

type DownloadReportInput struct {
	ReportID string
}

type GenerateOutput struct {
	ReportID string
	Status   string
	Message  string
}

type ProcessOutput struct {
	ReportID         string
	TotalMentions    int
	NegativeMentions int
	Skipped          int
	SpikeDetected    bool
	AttackerCount    int
	Duration         time.Duration
}

type ReportOutput struct {
	ID               string
	UserID           string
	Title            string
	Source           string
	BatchID          string
	Subject          intelligence.Subject
	SourceURLs       []string
	Status           string
	ErrorMessage     string
	FileSizeBytes    int64
	TotalMentions    int
	NegativeMentions int
	SkippedRecords   int
	SpikeDetected    bool
	AttackerCount    int
	GenerationTimeMs int64
	CompletedAt      *time.Time
	CreatedAt        time.Time
}

type ListReportsOutput struct {
	Reports   []ReportOutput
	Paginator paginator.Paginator
}

type ContentOutput struct {
	ReportID string
	Content  json.RawMessage
	Cached   bool
}

type DownloadOutput struct {
	DownloadURL string
	ExpiresAt   time.Time
	FileName    string
	FileSize    int64
}

// ResultEvent is published once per run, completed or failed.
type ResultEvent struct {
	ReportID         string
	BatchID          string
	Status           string
	FileURL          string
	TotalMentions    int
	NegativeMentions int
	SpikeDetected    bool
	AttackerCount    int
	ErrorMessage     string
	FinishedAt       time.Time
}

// Alert is raised for a spike or a set of coordinated attackers.
type Alert struct {
	Kind        string
	ReportID    string
	Subject     intelligence.Subject
	Spike       *intelligence.SpikeAlert
	Attackers   []intelligence.Attacker
	GeneratedAt time.Time
}
