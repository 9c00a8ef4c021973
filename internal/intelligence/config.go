package intelligence

import "fmt"

const (
	defaultRepeatUserThreshold      = 3
	defaultNegativeVideoThreshold   = 60.0
	defaultSpikeMultiplier          = 2.0
	defaultMinBucketsForSpike       = 3
	defaultMinStagesForCoordination = 2
	defaultTopOffenders             = 10
	defaultQueueSize                = 1024

	// A baseline needs at least one bucket before the last one.
	minBucketsFloor = 2
)

// Config holds every tunable of the engine.
// TopOffenders of 0 means the repeat-user ranking is not capped.
type Config struct {
	RepeatUserThreshold      int
	NegativeVideoThreshold   float64
	SpikeMultiplier          float64
	MinBucketsForSpike       int
	AttackerPolicy           Policy
	MinStagesForCoordination int
	TopOffenders             int
	QueueSize                int
	StageRules               Ruleset
	CategoryRules            Ruleset
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RepeatUserThreshold:      defaultRepeatUserThreshold,
		NegativeVideoThreshold:   defaultNegativeVideoThreshold,
		SpikeMultiplier:          defaultSpikeMultiplier,
		MinBucketsForSpike:       defaultMinBucketsForSpike,
		AttackerPolicy:           PolicyCrossStage,
		MinStagesForCoordination: defaultMinStagesForCoordination,
		TopOffenders:             defaultTopOffenders,
		QueueSize:                defaultQueueSize,
		StageRules:               DefaultStageRules(),
		CategoryRules:            DefaultCategoryRules(),
	}
}

// withDefaults fills zero values. TopOffenders is left alone.
func (c Config) withDefaults() Config {
	if c.RepeatUserThreshold <= 0 {
		c.RepeatUserThreshold = defaultRepeatUserThreshold
	}
	if c.NegativeVideoThreshold <= 0 {
		c.NegativeVideoThreshold = defaultNegativeVideoThreshold
	}
	if c.SpikeMultiplier <= 0 {
		c.SpikeMultiplier = defaultSpikeMultiplier
	}
	if c.MinBucketsForSpike <= 0 {
		c.MinBucketsForSpike = defaultMinBucketsForSpike
	}
	if c.MinBucketsForSpike < minBucketsFloor {
		c.MinBucketsForSpike = minBucketsFloor
	}
	if c.AttackerPolicy == "" {
		c.AttackerPolicy = PolicyCrossStage
	}
	if c.MinStagesForCoordination <= 0 {
		c.MinStagesForCoordination = defaultMinStagesForCoordination
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	if len(c.StageRules.Rules) == 0 && c.StageRules.Default == "" {
		c.StageRules = DefaultStageRules()
	}
	if len(c.CategoryRules.Rules) == 0 && c.CategoryRules.Default == "" {
		c.CategoryRules = DefaultCategoryRules()
	}
	return c
}

// Validate checks a config after defaults were applied.
func (c Config) Validate() error {
	if c.NegativeVideoThreshold > 100 {
		return fmt.Errorf("%w: negative video threshold %.2f above 100", ErrInvalidConfig, c.NegativeVideoThreshold)
	}
	if c.TopOffenders < 0 {
		return fmt.Errorf("%w: top offenders must not be negative", ErrInvalidConfig)
	}
	if !c.AttackerPolicy.IsValid() {
		return fmt.Errorf("%w: unknown attacker policy %q", ErrInvalidConfig, c.AttackerPolicy)
	}
	if err := c.StageRules.Validate(); err != nil {
		return fmt.Errorf("stage rules: %w", err)
	}
	if err := c.CategoryRules.Validate(); err != nil {
		return fmt.Errorf("category rules: %w", err)
	}
	return nil
}
