package assessment

import (
	"fmt"
	"time"
)

// Config carries the scoring policy and fan-out bounds. Weights, thresholds,
// and the required-versus-advisory split are deployment tuning, not engine
// code.
type Config struct {
	// RequiredSources must succeed for a score to be computed.
	RequiredSources []SourceKey
	// AdvisorySources enrich the result; their absence never blocks scoring.
	AdvisorySources []SourceKey
	// HealthProbes is the source set the health check exercises.
	HealthProbes []SourceKey

	// ReputationWeight scales the 0-100 reputation sub-score.
	ReputationWeight float64
	// HoldingsWeight is the maximum contribution of the holdings factor.
	HoldingsWeight float64
	// HoldingsCap is the total-value divisor; totals at or above it
	// contribute the full HoldingsWeight and no more.
	HoldingsCap float64
	// BaselineScore is the fixed account-history contribution.
	BaselineScore float64

	PremiumThreshold  float64
	StandardThreshold float64

	// DefaultDeadline bounds a whole assessment when the caller supplies
	// no deadline of its own.
	DefaultDeadline time.Duration
	// SourceTimeout bounds each individual source call.
	SourceTimeout time.Duration
}

// DefaultConfig returns the reference policy: reputation 50%, holdings
// capped at 25 points per million held, fixed baseline 25.
func DefaultConfig() Config {
	return Config{
		RequiredSources:   []SourceKey{SourceReputation, SourceDataset},
		AdvisorySources:   []SourceKey{SourceRecordStore},
		HealthProbes:      []SourceKey{SourceRecordStore, SourceDataset, SourceReputation},
		ReputationWeight:  0.5,
		HoldingsWeight:    25,
		HoldingsCap:       1_000_000,
		BaselineScore:     25,
		PremiumThreshold:  90,
		StandardThreshold: 70,
		DefaultDeadline:   10 * time.Second,
		SourceTimeout:     5 * time.Second,
	}
}

// Validate rejects configurations the engine cannot score with.
func (c Config) Validate() error {
	if len(c.RequiredSources) == 0 {
		return fmt.Errorf("at least one required source is needed")
	}
	seen := make(map[SourceKey]bool, len(c.RequiredSources)+len(c.AdvisorySources))
	for _, key := range c.RequestedSources() {
		if seen[key] {
			return fmt.Errorf("source %s listed twice", key)
		}
		seen[key] = true
	}
	probed := make(map[SourceKey]bool, len(c.HealthProbes))
	for _, key := range c.HealthProbes {
		if probed[key] {
			return fmt.Errorf("health probe %s listed twice", key)
		}
		probed[key] = true
	}
	if c.ReputationWeight < 0 || c.HoldingsWeight < 0 || c.BaselineScore < 0 {
		return fmt.Errorf("score weights must be non-negative")
	}
	if c.HoldingsCap <= 0 {
		return fmt.Errorf("holdings cap must be positive")
	}
	if c.PremiumThreshold < c.StandardThreshold {
		return fmt.Errorf("premium threshold must not be below standard threshold")
	}
	if c.DefaultDeadline <= 0 || c.SourceTimeout <= 0 {
		return fmt.Errorf("deadlines must be positive")
	}
	return nil
}

// RequestedSources returns every source an assessment fans out to,
// required first.
func (c Config) RequestedSources() []SourceKey {
	keys := make([]SourceKey, 0, len(c.RequiredSources)+len(c.AdvisorySources))
	keys = append(keys, c.RequiredSources...)
	keys = append(keys, c.AdvisorySources...)
	return keys
}

// IsRequired reports whether a source must succeed for scoring.
func (c Config) IsRequired(key SourceKey) bool {
	for _, k := range c.RequiredSources {
		if k == key {
			return true
		}
	}
	return false
}
