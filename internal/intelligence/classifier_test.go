package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		title string
		want  Stage
	}{
		{"Official Title Glimpse | Mass Hero", StageTitle},
		{"First Look Poster Launch", StageTitle},
		{"Full Video Song | Lyrical", StageSong},
		{"Official Teaser", StageTeaser},
		{"Theatrical TRAILER 4K", StageTrailer},
		{"Hero interview with press", StageInterview},
		{"Fans meet at Hyderabad", StageInterview},
		{"Public Talk after premiere", StageReview},
		{"Behind the scenes", StageOther},
		{"", StageOther},
		// first rule wins: "title" precedes "song"
		{"Title Song Promo", StageTitle},
		// "music" belongs to Song, checked before Teaser
		{"Music teaser", StageSong},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStage(tt.title))
		})
	}
}

func TestClassifyNegativeCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"personal attack before box office", "Flop hero again", "Personal Attack"},
		{"story", "Same old story, nothing new", "Story Doubt"},
		{"music", "BGM is copied", "Music Criticism"},
		{"direction", "Screenplay is a mess", "Direction Criticism"},
		{"box office", "Sure shot disaster", "Box Office Doubt"},
		{"visuals", "cheap VFX", "Visual Quality"},
		{"default", "I don't like it", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyNegativeCategory(tt.text))
		})
	}
}

func TestRulesetClassify_caseInsensitive(t *testing.T) {
	rs := Ruleset{
		Default: "none",
		Rules:   []Rule{{Label: "x", Keywords: []string{"AbC"}}},
	}.normalized()

	assert.Equal(t, "x", rs.Classify("zzABCzz"))
	assert.Equal(t, "none", rs.Classify("ab c"))
}

func TestRulesetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rs      Ruleset
		wantErr bool
	}{
		{"defaults", DefaultStageRules(), false},
		{"empty default", Ruleset{Rules: []Rule{{Label: "a", Keywords: []string{"a"}}}}, true},
		{"empty label", Ruleset{Default: "d", Rules: []Rule{{Keywords: []string{"a"}}}}, true},
		{"no keywords", Ruleset{Default: "d", Rules: []Rule{{Label: "a"}}}, true},
		{"blank keyword", Ruleset{Default: "d", Rules: []Rule{{Label: "a", Keywords: []string{" "}}}}, true},
		{"no rules", Ruleset{Default: "d"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rs.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRuleset)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRulesetLabels(t *testing.T) {
	labels := DefaultStageRules().Labels()
	assert.Equal(t, []string{
		"Title / Announcement", "Song", "Teaser", "Trailer",
		"Interview / Press", "Review / Public Talk", "Other",
	}, labels)
}

func TestParseSentiment(t *testing.T) {
	tests := map[string]Sentiment{
		"Positive":      SentimentPositive,
		"very positive": SentimentPositive,
		"POS":           SentimentPositive,
		"Negative":      SentimentNegative,
		"Very Negative": SentimentNegative,
		"Neutral":       SentimentNegative,
		"":              "",
		"  ":            "",
	}
	for label, want := range tests {
		assert.Equal(t, want, ParseSentiment(label), "label %q", label)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]Language{
		"te":            LanguageTelugu,
		"en":            LanguageEnglish,
		"hi":            LanguageHindi,
		"Telugu":        LanguageTelugu,
		"ta":            LanguageMixed,
		"Mixed / Roman": LanguageMixed,
		"":              LanguageUnknown,
		"Unknown":       LanguageUnknown,
	}
	for tag, want := range tests {
		assert.Equal(t, want, NormalizeLanguage(tag), "tag %q", tag)
	}
}
