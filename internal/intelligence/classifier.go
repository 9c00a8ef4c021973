package intelligence

import (
	"fmt"
	"strings"
)

// Rule maps a label to the keywords that select it.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset is an ordered list of rules. The first rule with a keyword
// contained in the lower-cased input wins; Default is returned otherwise.
type Ruleset struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// Classify returns the label of the first matching rule.
func (rs Ruleset) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, r := range rs.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Label
			}
		}
	}
	return rs.Default
}

// Labels returns the rule labels in declaration order, default last.
func (rs Ruleset) Labels() []string {
	labels := make([]string, 0, len(rs.Rules)+1)
	seen := make(map[string]bool, len(rs.Rules)+1)
	for _, r := range rs.Rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	if !seen[rs.Default] {
		labels = append(labels, rs.Default)
	}
	return labels
}

// Validate rejects empty labels, empty keyword lists and blank keywords.
func (rs Ruleset) Validate() error {
	if strings.TrimSpace(rs.Default) == "" {
		return fmt.Errorf("%w: default label is empty", ErrInvalidRuleset)
	}
	for i, r := range rs.Rules {
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("%w: rule %d has no label", ErrInvalidRuleset, i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("%w: rule %q has no keywords", ErrInvalidRuleset, r.Label)
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: rule %q has a blank keyword", ErrInvalidRuleset, r.Label)
			}
		}
	}
	return nil
}

// normalized lower-cases every keyword so Classify only lowers the input.
func (rs Ruleset) normalized() Ruleset {
	out := Ruleset{Default: strings.TrimSpace(rs.Default), Rules: make([]Rule, 0, len(rs.Rules))}
	for _, r := range rs.Rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kws = append(kws, strings.ToLower(strings.TrimSpace(kw)))
		}
		out.Rules = append(out.Rules, Rule{Label: strings.TrimSpace(r.Label), Keywords: kws})
	}
	return out
}

// DefaultStageRules returns the built-in stage ruleset.
func DefaultStageRules() Ruleset {
	return Ruleset{
		Default: string(StageOther),
		Rules: []Rule{
			{Label: string(StageTitle), Keywords: []string{"title", "glimpse", "announcement", "first look"}},
			{Label: string(StageSong), Keywords: []string{"song", "lyrical", "audio", "music"}},
			{Label: string(StageTeaser), Keywords: []string{"teaser"}},
			{Label: string(StageTrailer), Keywords: []string{"trailer"}},
			{Label: string(StageInterview), Keywords: []string{"interview", "press", "meet"}},
			{Label: string(StageReview), Keywords: []string{"review", "public"}},
		},
	}
}

// DefaultCategoryRules returns the built-in negative category ruleset.
func DefaultCategoryRules() Ruleset {
	return Ruleset{
		Default: string(CategoryGeneral),
		Rules: []Rule{
			{Label: "Personal Attack", Keywords: []string{"flop hero", "worst actor", "old hero", "retire", "shame", "idiot", "useless fellow"}},
			{Label: "Story Doubt", Keywords: []string{"story", "plot", "script", "predictable", "same old", "routine", "outdated"}},
			{Label: "Music Criticism", Keywords: []string{"music", "song", "bgm", "tune", "lyrics", "copied"}},
			{Label: "Direction Criticism", Keywords: []string{"director", "direction", "screenplay", "editing"}},
			{Label: "Box Office Doubt", Keywords: []string{"flop", "disaster", "collection", "box office", "failure"}},
			{Label: "Visual Quality", Keywords: []string{"vfx", "graphics", "cgi", "visuals", "cinematography"}},
		},
	}
}

var (
	defaultStageRules    = DefaultStageRules()
	defaultCategoryRules = DefaultCategoryRules()
)

// ClassifyStage maps a video title to its stage with the built-in rules.
func ClassifyStage(title string) Stage {
	return Stage(defaultStageRules.Classify(title))
}

// ClassifyNegativeCategory maps a comment body to a negativity category
// with the built-in rules.
func ClassifyNegativeCategory(text string) Category {
	return Category(defaultCategoryRules.Classify(text))
}

// ParseSentiment normalizes a classifier label. Any label containing "pos"
// is Positive, any other non-empty label is Negative.
func ParseSentiment(label string) Sentiment {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "":
		return ""
	case strings.Contains(l, "pos"):
		return SentimentPositive
	default:
		return SentimentNegative
	}
}

// NormalizeLanguage maps ISO codes to display names. Canonical names are
// kept, unknown codes become Mixed / Roman and an empty tag is Unknown.
func NormalizeLanguage(tag string) Language {
	t := strings.TrimSpace(tag)
	switch strings.ToLower(t) {
	case "":
		return LanguageUnknown
	case "te", "telugu":
		return LanguageTelugu
	case "en", "english":
		return LanguageEnglish
	case "hi", "hindi":
		return LanguageHindi
	case "unknown":
		return LanguageUnknown
	default:
		return LanguageMixed
	}
}
