package intelligence

import (
	"cmp"
	"slices"
)

// Policy selects which repeat-negative users are reported.
type Policy string

const (
	// PolicyCrossStage requires negatives spread over several stages.
	PolicyCrossStage Policy = "cross_stage"
	// PolicyRepeat only requires the negative-count threshold.
	PolicyRepeat Policy = "repeat"
)

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool {
	return p == PolicyCrossStage || p == PolicyRepeat
}

// CoordinationConfig tunes DetectCoordination.
type CoordinationConfig struct {
	Threshold int
	MinStages int
	Policy    Policy
}

// DetectCoordination scans per-user histories and returns the users that
// satisfy the policy, ordered by negative count then author.
func DetectCoordination(histories map[string][]Comment, cfg CoordinationConfig) []Attacker {
	attackers := make([]Attacker, 0)
	for author, history := range histories {
		stages := make(map[Stage]struct{})
		videos := make(map[string]struct{})
		negatives := 0
		for _, c := range history {
			if !c.IsNegative() {
				continue
			}
			negatives++
			stages[c.VideoType] = struct{}{}
			videos[c.VideoTitle] = struct{}{}
		}

		if negatives < cfg.Threshold {
			continue
		}
		if cfg.Policy == PolicyCrossStage && len(stages) < max(cfg.MinStages, 1) {
			continue
		}

		targeted := make([]Stage, 0, len(stages))
		for s := range stages {
			targeted = append(targeted, s)
		}
		slices.Sort(targeted)

		attackers = append(attackers, Attacker{
			Author:           author,
			NegativeComments: negatives,
			StagesTargeted:   targeted,
			VideosTargeted:   len(videos),
		})
	}

	slices.SortFunc(attackers, func(a, b Attacker) int {
		if c := cmp.Compare(b.NegativeComments, a.NegativeComments); c != 0 {
			return c
		}
		return cmp.Compare(a.Author, b.Author)
	})
	return attackers
}
