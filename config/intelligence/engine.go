package intelligence

import (
	"fmt"

	"intelligence-srv/config"
	"intelligence-srv/internal/intelligence"
)

// New builds the analysis engine from its config section. Custom keyword
// rules are read from RulesFile when set.
func New(cfg config.IntelligenceConfig) (*intelligence.Engine, error) {
	ec := intelligence.Config{
		RepeatUserThreshold:      cfg.RepeatUserThreshold,
		NegativeVideoThreshold:   cfg.NegativeVideoThreshold,
		SpikeMultiplier:          cfg.SpikeMultiplier,
		MinBucketsForSpike:       cfg.MinBucketsForSpike,
		AttackerPolicy:           intelligence.Policy(cfg.AttackerPolicy),
		MinStagesForCoordination: cfg.MinStagesForCoordination,
		TopOffenders:             cfg.TopOffenders,
		QueueSize:                cfg.QueueSize,
	}

	if cfg.RulesFile != "" {
		stages, categories, err := intelligence.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("config.intelligence.New: %w", err)
		}
		ec.StageRules = stages
		ec.CategoryRules = categories
	}

	e, err := intelligence.New(ec)
	if err != nil {
		return nil, fmt.Errorf("config.intelligence.New: %w", err)
	}
	return e, nil
}
