package intelligence

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// HourLayout is the layout of hourly time buckets.
const HourLayout = "2006-01-02 15:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Aggregator folds classified comments into running counters.
// It is not safe for concurrent use; a Session gives it a single owner.
type Aggregator struct {
	stageRules    Ruleset
	categoryRules Ruleset

	total    int
	negative int

	stages     map[Stage]*Counter
	languages  map[Language]*Counter
	videos     map[string]*VideoStats
	songs      map[string]*Counter
	categories map[Category]int
	buckets    map[string]int
	histories  map[string][]Comment
	comments   []Comment
	skipped    map[SkipReason]int
}

// NewAggregator returns an empty Aggregator using the given rulesets for
// records that arrive without a stage or category.
func NewAggregator(stageRules, categoryRules Ruleset) *Aggregator {
	return &Aggregator{
		stageRules:    stageRules.normalized(),
		categoryRules: categoryRules.normalized(),
		stages:        make(map[Stage]*Counter),
		languages:     make(map[Language]*Counter),
		videos:        make(map[string]*VideoStats),
		songs:         make(map[string]*Counter),
		categories:    make(map[Category]int),
		buckets:       make(map[string]int),
		histories:     make(map[string][]Comment),
		skipped:       make(map[SkipReason]int),
	}
}

// Ingest folds one record. It never fails: a record that cannot be
// normalized is skipped and counted under its reason.
func (a *Aggregator) Ingest(rec ClassifiedComment) IngestOutcome {
	c, reason := a.normalize(rec)
	if reason != "" {
		a.skipped[reason]++
		return IngestOutcome{Reason: reason}
	}

	neg := c.IsNegative()
	a.total++
	if neg {
		a.negative++
	}

	bump(a.stages, c.VideoType, neg)
	bump(a.languages, c.Language, neg)

	v, ok := a.videos[c.VideoTitle]
	if !ok {
		v = &VideoStats{Title: c.VideoTitle, Stage: c.VideoType, URL: c.VideoURL}
		a.videos[c.VideoTitle] = v
	}
	// Same-titled records may disagree; keep the smallest value so the
	// result does not depend on arrival order.
	if c.VideoType != "" && (v.Stage == "" || c.VideoType < v.Stage) {
		v.Stage = c.VideoType
	}
	if c.VideoURL != "" && (v.URL == "" || c.VideoURL < v.URL) {
		v.URL = c.VideoURL
	}
	v.Total++
	if neg {
		v.Negative++
	}

	if c.VideoType == StageSong {
		bump(a.songs, c.VideoTitle, neg)
	}

	if neg {
		a.categories[c.NegativeCategory]++
		a.buckets[c.PublishedAt.Format(HourLayout)]++
	}

	a.histories[c.Author] = append(a.histories[c.Author], c)
	a.comments = append(a.comments, c)

	return IngestOutcome{Accepted: true, Comment: c}
}

// Skip counts a record that could not even be decoded.
func (a *Aggregator) Skip(reason SkipReason) {
	a.skipped[reason]++
}

func (a *Aggregator) normalize(rec ClassifiedComment) (Comment, SkipReason) {
	author := strings.TrimSpace(rec.Author)
	title := strings.TrimSpace(rec.VideoTitle)
	sentiment := ParseSentiment(string(rec.Sentiment))
	if author == "" || title == "" || sentiment == "" {
		return Comment{}, SkipMissingField
	}

	publishedAt, ok := parseTimestamp(rec.PublishedAt)
	if !ok {
		return Comment{}, SkipParseFailure
	}

	stage := Stage(strings.TrimSpace(string(rec.VideoType)))
	if stage == "" {
		stage = Stage(a.stageRules.Classify(title))
	}

	c := Comment{
		Author:      author,
		Text:        rec.Text,
		PublishedAt: publishedAt,
		VideoTitle:  title,
		VideoType:   stage,
		VideoURL:    strings.TrimSpace(rec.VideoURL),
		Sentiment:   sentiment,
		Language:    NormalizeLanguage(string(rec.Language)),
	}
	if rec.Confidence != nil && *rec.Confidence >= 0 && *rec.Confidence <= 1 {
		conf := *rec.Confidence
		c.Confidence = &conf
	}
	if sentiment == SentimentNegative {
		c.NegativeCategory = Category(strings.TrimSpace(string(rec.NegativeCategory)))
		if c.NegativeCategory == "" {
			c.NegativeCategory = Category(a.categoryRules.Classify(rec.Text))
		}
	}
	return c, ""
}

func parseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func bump[K comparable](m map[K]*Counter, key K, negative bool) {
	c, ok := m[key]
	if !ok {
		c = &Counter{}
		m[key] = c
	}
	c.Total++
	if negative {
		c.Negative++
	}
}

// Aggregates is a detached copy of an Aggregator's state.
type Aggregates struct {
	TotalMentions    int
	NegativeMentions int
	Stages           map[Stage]Counter
	Languages        map[Language]Counter
	Videos           map[string]VideoStats
	Songs            map[string]Counter
	Categories       map[Category]int
	HourlyNegatives  map[string]int
	Histories        map[string][]Comment
	Comments         []Comment
	Skipped          map[SkipReason]int
}

// Snapshot copies the current state. Later ingests do not affect it.
func (a *Aggregator) Snapshot() Aggregates {
	histories := make(map[string][]Comment, len(a.histories))
	for author, h := range a.histories {
		histories[author] = slices.Clone(h)
	}
	videos := make(map[string]VideoStats, len(a.videos))
	for title, v := range a.videos {
		videos[title] = *v
	}
	return Aggregates{
		TotalMentions:    a.total,
		NegativeMentions: a.negative,
		Stages:           derefCounters(a.stages),
		Languages:        derefCounters(a.languages),
		Videos:           videos,
		Songs:            derefCounters(a.songs),
		Categories:       maps.Clone(a.categories),
		HourlyNegatives:  maps.Clone(a.buckets),
		Histories:        histories,
		Comments:         slices.Clone(a.comments),
		Skipped:          maps.Clone(a.skipped),
	}
}

func derefCounters[K comparable](m map[K]*Counter) map[K]Counter {
	out := make(map[K]Counter, len(m))
	for k, v := range m {
		out[k] = *v
	}
	return out
}

// NegativeSeries returns the hourly negative counts in chronological order.
func (g Aggregates) NegativeSeries() []BucketCount {
	hours := slices.Sorted(maps.Keys(g.HourlyNegatives))
	series := make([]BucketCount, 0, len(hours))
	for _, h := range hours {
		series = append(series, BucketCount{Hour: h, Count: g.HourlyNegatives[h]})
	}
	return series
}

// SkippedTotal returns the number of records left out for any reason.
func (g Aggregates) SkippedTotal() int {
	n := 0
	for _, v := range g.Skipped {
		n += v
	}
	return n
}
