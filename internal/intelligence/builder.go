package intelligence

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// BuildInput is everything the report builder reads. It is never modified.
type BuildInput struct {
	Aggregates  Aggregates
	Spike       *SpikeAlert
	Attackers   []Attacker
	RepeatUsers []Attacker
	Config      Config
	Subject     Subject
	GeneratedAt time.Time
}

// Build composes the final report. Everything it exposes is copied out of
// the input, and ordering never depends on arrival order.
func Build(in BuildInput) Report {
	agg := in.Aggregates
	cfg := in.Config

	flagged := flaggedVideos(agg.Videos, cfg.NegativeVideoThreshold)
	repeat := cloneAttackers(in.RepeatUsers)
	if cfg.TopOffenders > 0 && len(repeat) > cfg.TopOffenders {
		repeat = repeat[:cfg.TopOffenders]
	}

	var spike *SpikeAlert
	if in.Spike != nil {
		s := *in.Spike
		spike = &s
	}

	comments := slices.Clone(agg.Comments)
	slices.SortStableFunc(comments, compareComments)
	if comments == nil {
		comments = []Comment{}
	}

	r := Report{
		GeneratedAt: in.GeneratedAt.UTC(),
		Movie:       in.Subject.Movie,
		Hero:        in.Subject.Hero,
		Director:    in.Subject.Director,
		Instances: Instances{
			TotalMentions:    agg.TotalMentions,
			NegativeMentions: agg.NegativeMentions,
		},
		SentimentByStage:      cloneMap(agg.Stages),
		LanguageDistribution:  cloneMap(agg.Languages),
		SongAnalysis:          cloneMap(agg.Songs),
		NegativeCategories:    cloneMap(agg.Categories),
		NegativeSpikes:        cloneMap(agg.HourlyNegatives),
		SpikeAlert:            spike,
		AttackerPolicy:        cfg.AttackerPolicy,
		AttackCoordination:    cloneAttackers(in.Attackers),
		FlaggedNegativeVideos: flagged,
		RepeatUsers:           repeat,
		Diagnostics: Diagnostics{
			Skipped:  agg.SkippedTotal(),
			ByReason: cloneMap(agg.Skipped),
		},
		Comments: comments,
	}
	r.KeyTakeaways = takeaways(r, agg, cfg)
	return r
}

func flaggedVideos(videos map[string]VideoStats, threshold float64) []FlaggedVideo {
	out := make([]FlaggedVideo, 0)
	for _, v := range videos {
		pct := round2(v.NegativeRatio() * 100)
		if pct < threshold {
			continue
		}
		out = append(out, FlaggedVideo{
			VideoTitle:         v.Title,
			VideoType:          v.Stage,
			VideoURL:           v.URL,
			TotalComments:      v.Total,
			NegativeComments:   v.Negative,
			NegativePercentage: pct,
		})
	}
	slices.SortFunc(out, func(a, b FlaggedVideo) int {
		if c := cmp.Compare(b.NegativePercentage, a.NegativePercentage); c != 0 {
			return c
		}
		if c := cmp.Compare(b.NegativeComments, a.NegativeComments); c != 0 {
			return c
		}
		return cmp.Compare(a.VideoTitle, b.VideoTitle)
	})
	return out
}

func takeaways(r Report, agg Aggregates, cfg Config) []string {
	total := r.Instances.TotalMentions
	pct := round2(float64(r.Instances.NegativeMentions) / float64(max(1, total)) * 100)

	out := []string{
		fmt.Sprintf("%.2f%% of all mentions are negative", pct),
		fmt.Sprintf("%d videos crossed the %s%% negative threshold",
			len(r.FlaggedNegativeVideos), strconv.FormatFloat(cfg.NegativeVideoThreshold, 'f', -1, 64)),
	}

	if stage, ratio, ok := worstStage(agg.Stages, cfg.StageRules); ok {
		out = append(out, fmt.Sprintf("The stage with the highest negative ratio is %s (%.2f%%)", stage, round2(ratio*100)))
	}
	if r.SpikeAlert != nil {
		out = append(out, fmt.Sprintf("Negative spike at %s: %d negative comments against a %.2f hourly average",
			r.SpikeAlert.Hour, r.SpikeAlert.Count, r.SpikeAlert.Average))
	}
	if n := len(r.AttackCoordination); n > 0 {
		out = append(out, fmt.Sprintf("%d users repeatedly posted negative comments across stages", n))
	}
	if cat, n, ok := topCategory(agg.Categories); ok {
		out = append(out, fmt.Sprintf("Most common negativity driver is %s (%d comments)", cat, n))
	}
	if r.Diagnostics.Skipped > 0 {
		out = append(out, fmt.Sprintf("%d records were skipped (%s)", r.Diagnostics.Skipped, skipBreakdown(r.Diagnostics.ByReason)))
	}
	return out
}

// worstStage returns the stage with the highest negative ratio. Ties go to
// the stage declared first in the ruleset; undeclared stages follow in
// alphabetical order.
func worstStage(stages map[Stage]Counter, rules Ruleset) (Stage, float64, bool) {
	order := stageOrder(stages, rules)
	var (
		best      Stage
		bestRatio = -1.0
	)
	for _, s := range order {
		if ratio := stages[s].NegativeRatio(); ratio > bestRatio {
			best, bestRatio = s, ratio
		}
	}
	return best, bestRatio, len(order) > 0
}

func stageOrder(stages map[Stage]Counter, rules Ruleset) []Stage {
	order := make([]Stage, 0, len(stages))
	declared := make(map[Stage]bool)
	for _, label := range rules.Labels() {
		s := Stage(label)
		declared[s] = true
		if _, ok := stages[s]; ok {
			order = append(order, s)
		}
	}
	var extra []Stage
	for s := range stages {
		if !declared[s] {
			extra = append(extra, s)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

func topCategory(categories map[Category]int) (Category, int, bool) {
	keys := slices.Sorted(maps.Keys(categories))
	var (
		best Category
		n    int
	)
	for _, k := range keys {
		if categories[k] > n {
			best, n = k, categories[k]
		}
	}
	return best, n, n > 0
}

func compareComments(a, b Comment) int {
	if c := a.PublishedAt.Compare(b.PublishedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Author, b.Author); c != 0 {
		return c
	}
	if c := cmp.Compare(a.VideoTitle, b.VideoTitle); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Text, b.Text); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Sentiment, b.Sentiment); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Language, b.Language); c != 0 {
		return c
	}
	if c := cmp.Compare(a.VideoURL, b.VideoURL); c != 0 {
		return c
	}
	if c := cmp.Compare(a.VideoType, b.VideoType); c != 0 {
		return c
	}
	if c := cmp.Compare(a.NegativeCategory, b.NegativeCategory); c != 0 {
		return c
	}
	return compareConfidence(a.Confidence, b.Confidence)
}

// skipBreakdown renders per-reason skip counts as "reason: n", sorted by reason.
func skipBreakdown(byReason map[SkipReason]int) string {
	reasons := slices.Sorted(maps.Keys(byReason))
	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if n := byReason[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, n))
		}
	}
	return strings.Join(parts, ", ")
}

// compareConfidence orders a missing confidence first.
func compareConfidence(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	maps.Copy(out, m)
	return out
}

func cloneAttackers(in []Attacker) []Attacker {
	out := make([]Attacker, 0, len(in))
	for _, a := range in {
		a.StagesTargeted = slices.Clone(a.StagesTargeted)
		out = append(out, a)
	}
	return out
}
