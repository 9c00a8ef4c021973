package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(author, title string, stage Stage, sentiment Sentiment, at string) ClassifiedComment {
	return ClassifiedComment{
		Author:      author,
		Text:        "some text",
		PublishedAt: at,
		VideoTitle:  title,
		VideoType:   stage,
		Sentiment:   sentiment,
		Language:    "en",
	}
}

func newTestAggregator() *Aggregator {
	return NewAggregator(DefaultStageRules(), DefaultCategoryRules())
}

func TestAggregatorIngest_counters(t *testing.T) {
	agg := newTestAggregator()

	agg.Ingest(comment("u1", "Teaser A", StageTeaser, SentimentNegative, "2024-05-01T10:15:00Z"))
	agg.Ingest(comment("u1", "Teaser A", StageTeaser, SentimentPositive, "2024-05-01T10:20:00Z"))
	agg.Ingest(comment("u2", "Song B", StageSong, SentimentNegative, "2024-05-01T11:05:00Z"))

	g := agg.Snapshot()
	assert.Equal(t, 3, g.TotalMentions)
	assert.Equal(t, 2, g.NegativeMentions)
	assert.Equal(t, Counter{Total: 2, Negative: 1}, g.Stages[StageTeaser])
	assert.Equal(t, Counter{Total: 1, Negative: 1}, g.Stages[StageSong])
	assert.Equal(t, Counter{Total: 3, Negative: 2}, g.Languages[LanguageEnglish])
	assert.Equal(t, Counter{Total: 2, Negative: 1}, g.Videos["Teaser A"].Counter)
	assert.Equal(t, Counter{Total: 1, Negative: 1}, g.Songs["Song B"])
	assert.NotContains(t, g.Songs, "Teaser A")
	assert.Equal(t, map[string]int{"2024-05-01 10:00": 1, "2024-05-01 11:00": 1}, g.HourlyNegatives)
	assert.Len(t, g.Histories["u1"], 2)
	assert.Len(t, g.Comments, 3)
}

func TestAggregatorIngest_conservation(t *testing.T) {
	agg := newTestAggregator()
	stages := []Stage{StageTeaser, StageTrailer, StageSong, ""}
	for i := 0; i < 40; i++ {
		s := SentimentPositive
		if i%3 == 0 {
			s = SentimentNegative
		}
		agg.Ingest(comment("u", "Video", stages[i%len(stages)], s, "2024-05-01T10:00:00Z"))
	}

	g := agg.Snapshot()
	var stageTotal, stageNeg, langTotal, catTotal int
	for _, c := range g.Stages {
		stageTotal += c.Total
		stageNeg += c.Negative
	}
	for _, c := range g.Languages {
		langTotal += c.Total
	}
	for _, n := range g.Categories {
		catTotal += n
	}
	assert.Equal(t, g.TotalMentions, stageTotal)
	assert.Equal(t, g.NegativeMentions, stageNeg)
	assert.Equal(t, g.TotalMentions, langTotal)
	assert.Equal(t, g.NegativeMentions, catTotal)
}

func TestAggregatorIngest_malformed(t *testing.T) {
	agg := newTestAggregator()

	out := agg.Ingest(comment("u1", "Teaser", StageTeaser, SentimentNegative, "yesterday"))
	assert.False(t, out.Accepted)
	assert.Equal(t, SkipParseFailure, out.Reason)

	out = agg.Ingest(comment("", "Teaser", StageTeaser, SentimentNegative, "2024-05-01T10:00:00Z"))
	assert.Equal(t, SkipMissingField, out.Reason)

	out = agg.Ingest(comment("u1", "Teaser", StageTeaser, "", "2024-05-01T10:00:00Z"))
	assert.Equal(t, SkipMissingField, out.Reason)

	agg.Skip(SkipMalformed)

	out = agg.Ingest(comment("u1", "Teaser", StageTeaser, SentimentNegative, "2024-05-01T10:00:00Z"))
	assert.True(t, out.Accepted)

	g := agg.Snapshot()
	assert.Equal(t, 1, g.TotalMentions)
	assert.Equal(t, map[SkipReason]int{SkipParseFailure: 1, SkipMissingField: 2, SkipMalformed: 1}, g.Skipped)
	assert.Equal(t, 4, g.SkippedTotal())
}

func TestAggregatorIngest_normalization(t *testing.T) {
	agg := newTestAggregator()
	conf := 0.93
	bad := 1.7

	out := agg.Ingest(ClassifiedComment{
		Author:      " fan ",
		Text:        "Flop hero movie",
		PublishedAt: "2024-05-01T15:45:00+05:30",
		VideoTitle:  "Official Trailer",
		Sentiment:   "Very Negative",
		Language:    "te",
		Confidence:  &conf,
	})
	require.True(t, out.Accepted)
	c := out.Comment
	assert.Equal(t, "fan", c.Author)
	assert.Equal(t, StageTrailer, c.VideoType)
	assert.Equal(t, SentimentNegative, c.Sentiment)
	assert.Equal(t, LanguageTelugu, c.Language)
	assert.Equal(t, Category("Personal Attack"), c.NegativeCategory)
	require.NotNil(t, c.Confidence)
	assert.Equal(t, 0.93, *c.Confidence)

	g := agg.Snapshot()
	// 15:45 +05:30 is 10:15 UTC
	assert.Equal(t, 1, g.HourlyNegatives["2024-05-01 10:00"])

	out = agg.Ingest(ClassifiedComment{
		Author:           "fan",
		PublishedAt:      "2024-05-01T10:00:00Z",
		VideoTitle:       "Official Trailer",
		Sentiment:        "positive",
		NegativeCategory: "Story Doubt",
		Confidence:       &bad,
	})
	require.True(t, out.Accepted)
	assert.Empty(t, out.Comment.NegativeCategory)
	assert.Nil(t, out.Comment.Confidence)
	assert.Equal(t, LanguageUnknown, out.Comment.Language)
}

func TestAggregatorIngest_videoStageAndURLIgnoreArrivalOrder(t *testing.T) {
	teaser := comment("a", "Clip", StageTeaser, SentimentPositive, "2024-05-01T10:00:00Z")
	teaser.VideoURL = "https://v/b"
	trailer := comment("b", "Clip", StageTrailer, SentimentNegative, "2024-05-01T10:00:00Z")
	trailer.VideoURL = "https://v/a"
	bare := comment("c", "Clip", StageTrailer, SentimentNegative, "2024-05-01T10:00:00Z")

	for _, order := range [][]ClassifiedComment{{teaser, trailer, bare}, {bare, trailer, teaser}} {
		agg := newTestAggregator()
		for _, rec := range order {
			agg.Ingest(rec)
		}

		g := agg.Snapshot()
		assert.Equal(t, StageTeaser, g.Videos["Clip"].Stage)
		assert.Equal(t, "https://v/a", g.Videos["Clip"].URL)
		assert.Equal(t, Counter{Total: 3, Negative: 2}, g.Videos["Clip"].Counter)
		assert.Equal(t, 2, g.Stages[StageTrailer].Total)
	}
}

func TestAggregatorIngest_sentimentLabels(t *testing.T) {
	agg := newTestAggregator()

	out := agg.Ingest(comment("u1", "Teaser", StageTeaser, "Neutral", "2024-05-01T10:00:00Z"))
	require.True(t, out.Accepted)
	assert.Equal(t, SentimentNegative, out.Comment.Sentiment)

	out = agg.Ingest(comment("u1", "Teaser", StageTeaser, "  ", "2024-05-01T10:00:00Z"))
	assert.False(t, out.Accepted)
	assert.Equal(t, SkipMissingField, out.Reason)
}

func TestAggregatorIngest_noDedup(t *testing.T) {
	agg := newTestAggregator()
	rec := comment("a", "Clip", StageTeaser, SentimentNegative, "2024-05-01T10:00:00Z")
	agg.Ingest(rec)
	agg.Ingest(rec)

	assert.Equal(t, 2, agg.Snapshot().NegativeMentions)
}

func TestAggregatorSnapshot_detached(t *testing.T) {
	agg := newTestAggregator()
	agg.Ingest(comment("a", "Clip", StageTeaser, SentimentNegative, "2024-05-01T10:00:00Z"))
	g := agg.Snapshot()

	agg.Ingest(comment("a", "Clip", StageTeaser, SentimentNegative, "2024-05-01T11:00:00Z"))

	assert.Equal(t, 1, g.TotalMentions)
	assert.Len(t, g.Histories["a"], 1)
	assert.Equal(t, 1, g.Videos["Clip"].Total)
	assert.Len(t, g.HourlyNegatives, 1)
}

func TestAggregatesNegativeSeries(t *testing.T) {
	g := Aggregates{HourlyNegatives: map[string]int{
		"2024-05-02 00:00": 5,
		"2024-05-01 23:00": 2,
		"2024-05-01 09:00": 1,
	}}

	assert.Equal(t, []BucketCount{
		{Hour: "2024-05-01 09:00", Count: 1},
		{Hour: "2024-05-01 23:00", Count: 2},
		{Hour: "2024-05-02 00:00", Count: 5},
	}, g.NegativeSeries())
}
