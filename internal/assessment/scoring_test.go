package assessment

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"assay/internal/assessment/ports"
)

// =============================================================================
// Scoring Engine Test Suite
// =============================================================================
// Justification for unit tests: the engine is pure, so every completeness and
// tier boundary can be pinned exactly here, without backends or clocks.

type ScoringEngineSuite struct {
	suite.Suite
	engine *Engine
}

func TestScoringEngineSuite(t *testing.T) {
	suite.Run(t, new(ScoringEngineSuite))
}

func (s *ScoringEngineSuite) SetupTest() {
	var err error
	s.engine, err = NewEngine(DefaultConfig())
	s.Require().NoError(err)
}

func (s *ScoringEngineSuite) bundle(entries map[SourceKey]SourceResult) Bundle {
	builder := newBundleBuilder(len(entries))
	for key, result := range entries {
		builder.set(key, result)
	}
	return builder.freeze()
}

func reputationOf(score float64) SourceResult {
	return Succeed(&ports.ReputationReport{Score: score})
}

func holdingsOf(total float64) SourceResult {
	return Succeed(&ports.HoldingsSummary{TotalValue: total})
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ScoringEngineSuite) TestNewEngine() {
	s.Run("invalid config is rejected", func() {
		cfg := DefaultConfig()
		cfg.HoldingsCap = 0
		_, err := NewEngine(cfg)
		s.Error(err)
	})

	s.Run("default config is accepted", func() {
		engine, err := NewEngine(DefaultConfig())
		s.NoError(err)
		s.NotNil(engine)
	})
}

// =============================================================================
// Completeness Classification Tests
// =============================================================================

func (s *ScoringEngineSuite) TestScoreCompleteness() {
	s.Run("all sources successful is complete", func() {
		score, tier, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80),
			SourceDataset:     holdingsOf(500_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessComplete, completeness)
		s.Require().NotNil(score)
		s.Equal(TierStandard, tier)
	})

	s.Run("required fatal error fails the assessment", func() {
		score, tier, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  Fatal("denied"),
			SourceDataset:     holdingsOf(500_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessFailed, completeness)
		s.Nil(score)
		s.Empty(tier)
	})

	s.Run("required transient error is partial without a score", func() {
		score, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80),
			SourceDataset:     Transient("deadline exceeded"),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessPartial, completeness)
		s.Nil(score)
	})

	s.Run("required absence is partial without a score", func() {
		score, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80),
			SourceDataset:     NoData(),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessPartial, completeness)
		s.Nil(score)
	})

	s.Run("fatal outranks transient across required sources", func() {
		_, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  Transient("timeout"),
			SourceDataset:     Fatal("malformed"),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessFailed, completeness)
	})

	s.Run("advisory degradation keeps the score but marks partial", func() {
		score, tier, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80),
			SourceDataset:     holdingsOf(500_000),
			SourceRecordStore: Transient("timeout"),
		}))
		s.Equal(CompletenessPartial, completeness)
		s.Require().NotNil(score)
		s.Equal(TierStandard, tier)
	})

	s.Run("missing required slot fails rather than guessing", func() {
		_, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation: reputationOf(80),
		}))
		s.Equal(CompletenessFailed, completeness)
	})

	s.Run("mismatched payload shape is fatal", func() {
		_, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  Succeed("not a report"),
			SourceDataset:     holdingsOf(500_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessFailed, completeness)
	})

	s.Run("typed-nil report payload is fatal, not a panic", func() {
		score, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  Succeed((*ports.ReputationReport)(nil)),
			SourceDataset:     holdingsOf(500_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessFailed, completeness)
		s.Nil(score)
	})

	s.Run("typed-nil holdings payload is fatal, not a panic", func() {
		score, _, completeness := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80),
			SourceDataset:     Succeed((*ports.HoldingsSummary)(nil)),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(CompletenessFailed, completeness)
		s.Nil(score)
	})
}

// =============================================================================
// Score Computation Tests
// =============================================================================

func (s *ScoringEngineSuite) score(reputation, holdings float64) float64 {
	score, _, _ := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
		SourceReputation:  reputationOf(reputation),
		SourceDataset:     holdingsOf(holdings),
		SourceRecordStore: Succeed(&ports.CustomerRecord{}),
	}))
	s.Require().NotNil(score)
	return *score
}

func (s *ScoringEngineSuite) TestScoreComputation() {
	s.Run("weighted combination of reputation, holdings, and baseline", func() {
		// 80*0.5 + (500k/1M)*25 + 25 = 77.5
		s.InDelta(77.5, s.score(80, 500_000), 1e-9)
	})

	s.Run("full marks on every input reach exactly one hundred", func() {
		// 100*0.5 + capped(2M)*25 + 25 = 100
		s.InDelta(100, s.score(100, 2_000_000), 1e-9)
	})

	s.Run("holdings contribution is capped at one million", func() {
		atCap := s.score(80, 1_000_000)
		aboveCap := s.score(80, 5_000_000)
		s.InDelta(atCap, aboveCap, 1e-9)
		s.InDelta(90, atCap, 1e-9)
	})

	s.Run("reputation is clamped to its scale", func() {
		s.InDelta(s.score(100, 0), s.score(250, 0), 1e-9)
		s.InDelta(s.score(0, 0), s.score(-40, 0), 1e-9)
	})

	s.Run("score is monotone in each input", func() {
		s.Less(s.score(40, 200_000), s.score(60, 200_000))
		s.Less(s.score(40, 200_000), s.score(40, 400_000))
	})

	s.Run("same bundle always scores the same", func() {
		bundle := s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(72),
			SourceDataset:     holdingsOf(310_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		})
		first, _, _ := s.engine.Score(bundle)
		second, _, _ := s.engine.Score(bundle)
		s.Require().NotNil(first)
		s.Require().NotNil(second)
		s.Equal(*first, *second)
	})
}

// =============================================================================
// Tier Boundary Tests
// =============================================================================

func (s *ScoringEngineSuite) TestTierBoundaries() {
	s.Run("ninety and above is premium", func() {
		_, tier, _ := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(80), // 80*0.5 + 25 + 25 = 90
			SourceDataset:     holdingsOf(1_000_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(TierPremium, tier)
	})

	s.Run("seventy up to ninety is standard", func() {
		_, tier, _ := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(40), // 40*0.5 + 25 + 25 = 70
			SourceDataset:     holdingsOf(1_000_000),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(TierStandard, tier)
	})

	s.Run("below seventy requires enhanced diligence", func() {
		_, tier, _ := s.engine.Score(s.bundle(map[SourceKey]SourceResult{
			SourceReputation:  reputationOf(30), // 30*0.5 + 0 + 25 = 40
			SourceDataset:     holdingsOf(0),
			SourceRecordStore: Succeed(&ports.CustomerRecord{}),
		}))
		s.Equal(TierEnhancedDiligence, tier)
	})
}

// =============================================================================
// Recommendation Tests
// =============================================================================

func (s *ScoringEngineSuite) TestRecommendations() {
	s.Run("each tier maps to guidance", func() {
		s.Contains(Recommendations(TierPremium), "Eligible for premium services")
		s.Contains(Recommendations(TierStandard), "Standard services approved")
		s.Contains(Recommendations(TierEnhancedDiligence), "Enhanced due diligence required")
	})

	s.Run("absent tier maps to nothing", func() {
		s.Nil(Recommendations(Tier("")))
	})
}
