package assessment

import (
	"fmt"

	"assay/internal/assessment/ports"
)

// Engine turns a frozen bundle into a composite score and tier. It is pure:
// no I/O, no clock, no randomness; the same bundle always scores the same.
type Engine struct {
	cfg Config
}

// NewEngine validates the policy and returns a scoring engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Score evaluates the bundle. The returned score pointer is nil whenever any
// required source did not succeed; completeness classifies why:
//   - a required source failed fatally: failed
//   - a required source was missing or transiently unavailable: partial
//   - all required sources succeeded: complete, or partial when an advisory
//     source degraded alongside them.
func (e *Engine) Score(bundle Bundle) (*float64, Tier, Completeness) {
	worst := StatusSuccess
	for _, key := range e.cfg.RequiredSources {
		result, ok := bundle.Result(key)
		if !ok {
			// A missing slot means the bundle was not gathered for
			// this policy; treat as fatal rather than guessing.
			return nil, "", CompletenessFailed
		}
		switch result.Status {
		case StatusFatalError:
			return nil, "", CompletenessFailed
		case StatusTransientError, StatusNotFound:
			worst = result.Status
		}
	}
	if worst != StatusSuccess {
		return nil, "", CompletenessPartial
	}

	value, err := e.compute(bundle)
	if err != nil {
		return nil, "", CompletenessFailed
	}

	completeness := CompletenessComplete
	for _, key := range e.cfg.AdvisorySources {
		if result, ok := bundle.Result(key); !ok || !result.OK() {
			completeness = CompletenessPartial
		}
	}

	return &value, e.tierFor(value), completeness
}

// compute applies the weighted combination over whichever scoring inputs the
// bundle carries; the required-source check has already decided that scoring
// is allowed. Inputs are clamped before weighting so no single source can
// dominate the score unboundedly.
func (e *Engine) compute(bundle Bundle) (float64, error) {
	value := e.cfg.BaselineScore

	if payload := bundle.Payload(SourceReputation); payload != nil {
		// A typed-nil pointer survives the payload nil check above.
		report, ok := payload.(*ports.ReputationReport)
		if !ok || report == nil {
			return 0, fmt.Errorf("reputation payload has unexpected shape")
		}
		value += clamp(report.Score, 0, 100) * e.cfg.ReputationWeight
	}

	if payload := bundle.Payload(SourceDataset); payload != nil {
		holdings, ok := payload.(*ports.HoldingsSummary)
		if !ok || holdings == nil {
			return 0, fmt.Errorf("holdings payload has unexpected shape")
		}
		value += clamp(holdings.TotalValue/e.cfg.HoldingsCap, 0, 1) * e.cfg.HoldingsWeight
	}

	return value, nil
}

func (e *Engine) tierFor(score float64) Tier {
	switch {
	case score >= e.cfg.PremiumThreshold:
		return TierPremium
	case score >= e.cfg.StandardThreshold:
		return TierStandard
	default:
		return TierEnhancedDiligence
	}
}

// Recommendations returns the business guidance attached to a tier.
func Recommendations(tier Tier) []string {
	switch tier {
	case TierPremium:
		return []string{
			"Eligible for premium services",
			"Consider wealth management offering",
		}
	case TierStandard:
		return []string{
			"Standard services approved",
			"Monitor for premium eligibility",
		}
	case TierEnhancedDiligence:
		return []string{
			"Enhanced due diligence required",
			"Regular monitoring recommended",
		}
	default:
		return nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
