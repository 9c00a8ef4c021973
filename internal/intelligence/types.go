package intelligence

import "time"

// Sentiment is the normalized sentiment of a comment.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
)

// Stage is the promotional lifecycle stage of a video.
type Stage string

const (
	StageTitle     Stage = "Title / Announcement"
	StageSong      Stage = "Song"
	StageTeaser    Stage = "Teaser"
	StageTrailer   Stage = "Trailer"
	StageInterview Stage = "Interview / Press"
	StageReview    Stage = "Review / Public Talk"
	StageOther     Stage = "Other"
)

// Language is the detected language of a comment. Open set.
type Language string

const (
	LanguageTelugu  Language = "Telugu"
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
	LanguageMixed   Language = "Mixed / Roman"
	LanguageUnknown Language = "Unknown"
)

// Category is the keyword-derived reason behind a negative comment.
type Category string

const CategoryGeneral Category = "General Negativity"

// SkipReason explains why a record was left out of the aggregates.
type SkipReason string

const (
	SkipParseFailure SkipReason = "parse_failure"
	SkipMissingField SkipReason = "missing_field"
	SkipMalformed    SkipReason = "malformed"
)

// Subject names the film the comments are about. All fields are optional.
type Subject struct {
	Movie    string
	Hero     string
	Director string
}

// ClassifiedComment is one input record as handed over by the classifier
// adapter. Labels may be raw model output; they are normalized at ingest.
type ClassifiedComment struct {
	Author           string
	Text             string
	PublishedAt      string
	VideoTitle       string
	VideoType        Stage
	VideoURL         string
	Sentiment        Sentiment
	Language         Language
	Confidence       *float64
	NegativeCategory Category
}

// Comment is an accepted, normalized record.
type Comment struct {
	Author           string    `json:"author"`
	Text             string    `json:"comment"`
	PublishedAt      time.Time `json:"published_at"`
	VideoTitle       string    `json:"video_title"`
	VideoType        Stage     `json:"video_type"`
	VideoURL         string    `json:"video_url,omitempty"`
	Sentiment        Sentiment `json:"sentiment"`
	Language         Language  `json:"language"`
	Confidence       *float64  `json:"confidence,omitempty"`
	NegativeCategory Category  `json:"negative_category,omitempty"`
}

// IsNegative reports whether the comment counts toward negativity.
func (c Comment) IsNegative() bool {
	return c.Sentiment == SentimentNegative
}

// Counter is the canonical {total, negative} tally used for every dimension.
type Counter struct {
	Total    int `json:"total"`
	Negative int `json:"negative"`
}

// NegativeRatio returns negative/max(1,total).
func (c Counter) NegativeRatio() float64 {
	return float64(c.Negative) / float64(max(1, c.Total))
}

// VideoStats is the per-video tally. Videos are keyed by title.
type VideoStats struct {
	Title string
	Stage Stage
	URL   string
	Counter
}

// IngestOutcome is the result of folding one record into an Aggregator.
type IngestOutcome struct {
	Accepted bool
	Reason   SkipReason
	Comment  Comment
}

// BucketCount is one hour of negative comments.
type BucketCount struct {
	Hour  string
	Count int
}

// SpikeAlert is raised when the latest hour breaks the trailing baseline.
type SpikeAlert struct {
	Hour      string  `json:"hour"`
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
}

// Attacker is a user whose negative history met a coordination policy.
type Attacker struct {
	Author           string  `json:"author"`
	NegativeComments int     `json:"negative_comments"`
	StagesTargeted   []Stage `json:"stages_targeted"`
	VideosTargeted   int     `json:"videos_targeted"`
}

// FlaggedVideo is a video whose negative share crossed the threshold.
type FlaggedVideo struct {
	VideoTitle         string  `json:"video_title"`
	VideoType          Stage   `json:"video_type"`
	VideoURL           string  `json:"video_url,omitempty"`
	TotalComments      int     `json:"total_comments"`
	NegativeComments   int     `json:"negative_comments"`
	NegativePercentage float64 `json:"negative_percentage"`
}

// Instances is the headline mention count.
type Instances struct {
	TotalMentions    int `json:"total_mentions"`
	NegativeMentions int `json:"negative_mentions"`
}

// Diagnostics counts records that never reached the aggregates.
type Diagnostics struct {
	Skipped  int                `json:"skipped"`
	ByReason map[SkipReason]int `json:"by_reason"`
}

// Report is the immutable output of one engine run.
type Report struct {
	GeneratedAt           time.Time            `json:"generated_at"`
	Movie                 string               `json:"movie,omitempty"`
	Hero                  string               `json:"hero,omitempty"`
	Director              string               `json:"director,omitempty"`
	Instances             Instances            `json:"instances"`
	SentimentByStage      map[Stage]Counter    `json:"sentiment_by_stage"`
	LanguageDistribution  map[Language]Counter `json:"language_distribution"`
	SongAnalysis          map[string]Counter   `json:"song_analysis"`
	NegativeCategories    map[Category]int     `json:"negative_categories"`
	NegativeSpikes        map[string]int       `json:"negative_spikes"`
	SpikeAlert            *SpikeAlert          `json:"spike_alert,omitempty"`
	AttackerPolicy        Policy               `json:"attacker_policy"`
	AttackCoordination    []Attacker           `json:"attack_coordination"`
	FlaggedNegativeVideos []FlaggedVideo       `json:"flagged_negative_videos"`
	RepeatUsers           []Attacker           `json:"repeat_users"`
	KeyTakeaways          []string             `json:"key_takeaways"`
	Diagnostics           Diagnostics          `json:"diagnostics"`
	Comments              []Comment            `json:"comments"`
}
