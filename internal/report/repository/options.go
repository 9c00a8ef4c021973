package repository

import "time"

type CreateReportOptions struct {
	ID         string
	UserID     string
	Title      string
	Source     string
	BatchID    string
	ParamsHash string
	SourceURLs []string
	Movie      string
	Hero       string
	Director   string
}

type FindByParamsHashOptions struct {
	ParamsHash string
	Status     string
	// CreatedAfter, when set, ignores older rows.
	CreatedAfter time.Time
}

type UpdateCompletedOptions struct {
	ReportID         string
	FileURL          string
	FileSizeBytes    int64
	TotalMentions    int
	NegativeMentions int
	SkippedRecords   int
	SpikeDetected    bool
	AttackerCount    int
	GenerationTimeMs int64
	CompletedAt      time.Time
}

type UpdateFailedOptions struct {
	ReportID     string
	ErrorMessage string
}

type ListReportsOptions struct {
	UserID string
	Status string
	Limit  int
	Offset int
}
