package intelligence

import "math"

// SeverityHigh is the only severity the spike detector emits.
const SeverityHigh = "HIGH"

// SpikeConfig tunes DetectSpike.
type SpikeConfig struct {
	Multiplier float64
	MinBuckets int
}

// DetectSpike compares the last bucket of a chronological series with the
// mean of every bucket before it. It returns nil when the series is too
// short or the last bucket stays within Multiplier times the baseline.
func DetectSpike(series []BucketCount, cfg SpikeConfig) *SpikeAlert {
	minBuckets := max(cfg.MinBuckets, minBucketsFloor)
	if len(series) < minBuckets {
		return nil
	}

	history := series[:len(series)-1]
	last := series[len(series)-1]

	sum := 0
	for _, b := range history {
		sum += b.Count
	}
	baseline := float64(sum) / float64(len(history))
	threshold := cfg.Multiplier * baseline

	if float64(last.Count) <= threshold {
		return nil
	}
	return &SpikeAlert{
		Hour:      last.Hour,
		Count:     last.Count,
		Average:   round2(baseline),
		Threshold: round2(threshold),
		Severity:  SeverityHigh,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
