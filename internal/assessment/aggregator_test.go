package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"assay/pkg/platform/sentinel"
)

// =============================================================================
// Aggregator Test Suite
// =============================================================================
// Justification for unit tests: fan-out bounding, panic isolation, and the
// one-entry-per-key guarantee are timing-sensitive behaviors that a full
// stack test cannot pin down deterministically.

type AggregatorSuite struct {
	suite.Suite
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

// stubClient is a scriptable source client for fan-out tests.
type stubClient struct {
	key      SourceKey
	fetch    func(ctx context.Context, req Request) SourceResult
	probeErr error
	delay    time.Duration
}

func (c *stubClient) Key() SourceKey { return c.key }

func (c *stubClient) Fetch(ctx context.Context, req Request) SourceResult {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return Classify(ctx.Err())
		}
	}
	if c.fetch != nil {
		return c.fetch(ctx, req)
	}
	return Succeed(nil)
}

func (c *stubClient) Probe(ctx context.Context) error { return c.probeErr }

func okClient(key SourceKey, payload any) *stubClient {
	return &stubClient{key: key, fetch: func(context.Context, Request) SourceResult {
		return Succeed(payload)
	}}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *AggregatorSuite) TestNewAggregator() {
	s.Run("nil client is rejected", func() {
		_, err := NewAggregator([]SourceClient{nil})
		s.Error(err)
	})

	s.Run("duplicate keys are rejected", func() {
		_, err := NewAggregator([]SourceClient{
			okClient(SourceDataset, nil),
			okClient(SourceDataset, nil),
		})
		s.Error(err)
		s.Contains(err.Error(), "duplicate source client")
	})

	s.Run("distinct clients register", func() {
		agg, err := NewAggregator([]SourceClient{
			okClient(SourceDataset, nil),
			okClient(SourceReputation, nil),
		})
		s.NoError(err)
		s.NotNil(agg)
	})
}

// =============================================================================
// Gather Tests
// =============================================================================

func (s *AggregatorSuite) TestGather() {
	ctx := context.Background()

	s.Run("returns exactly one entry per requested key", func() {
		agg, err := NewAggregator([]SourceClient{
			okClient(SourceRecordStore, "record"),
			okClient(SourceDataset, "holdings"),
			okClient(SourceReputation, "report"),
		})
		s.Require().NoError(err)

		keys := []SourceKey{SourceRecordStore, SourceDataset, SourceReputation}
		bundle := agg.Gather(ctx, Request{}, keys)

		s.Equal(len(keys), bundle.Len())
		for _, key := range keys {
			result, ok := bundle.Result(key)
			s.True(ok, "missing entry for %s", key)
			s.Equal(StatusSuccess, result.Status)
		}
	})

	s.Run("one failing source never hides the others", func() {
		agg, err := NewAggregator([]SourceClient{
			okClient(SourceDataset, "holdings"),
			&stubClient{key: SourceReputation, fetch: func(context.Context, Request) SourceResult {
				return Classify(sentinel.ErrUnavailable)
			}},
		})
		s.Require().NoError(err)

		bundle := agg.Gather(ctx, Request{}, []SourceKey{SourceDataset, SourceReputation})

		s.Equal(StatusSuccess, bundle.Statuses()[SourceDataset])
		s.Equal(StatusTransientError, bundle.Statuses()[SourceReputation])
	})

	s.Run("slow source is abandoned at the deadline", func() {
		agg, err := NewAggregator([]SourceClient{
			okClient(SourceDataset, "holdings"),
			&stubClient{key: SourceReputation, delay: 5 * time.Second},
		})
		s.Require().NoError(err)

		deadlineCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		bundle := agg.Gather(deadlineCtx, Request{}, []SourceKey{SourceDataset, SourceReputation})

		s.Less(time.Since(start), time.Second, "gather must not wait for the slow source")
		result, _ := bundle.Result(SourceReputation)
		s.Equal(StatusTransientError, result.Status)
		s.Contains(result.Message, "deadline exceeded")
		s.Equal(StatusSuccess, bundle.Statuses()[SourceDataset])
	})

	s.Run("panicking source becomes a fatal entry", func() {
		agg, err := NewAggregator([]SourceClient{
			okClient(SourceDataset, "holdings"),
			&stubClient{key: SourceReputation, fetch: func(context.Context, Request) SourceResult {
				panic("nil map write")
			}},
		})
		s.Require().NoError(err)

		bundle := agg.Gather(ctx, Request{}, []SourceKey{SourceDataset, SourceReputation})

		result, _ := bundle.Result(SourceReputation)
		s.Equal(StatusFatalError, result.Status)
		s.Contains(result.Message, "panicked")
		s.Equal(StatusSuccess, bundle.Statuses()[SourceDataset])
	})

	s.Run("repeated key collapses to a single entry", func() {
		agg, err := NewAggregator([]SourceClient{okClient(SourceDataset, "holdings")})
		s.Require().NoError(err)

		bundle := agg.Gather(ctx, Request{}, []SourceKey{SourceDataset, SourceDataset})

		s.Equal(1, bundle.Len())
		s.Equal(StatusSuccess, bundle.Statuses()[SourceDataset])
	})

	s.Run("unregistered key yields a fatal entry", func() {
		agg, err := NewAggregator([]SourceClient{okClient(SourceDataset, nil)})
		s.Require().NoError(err)

		bundle := agg.Gather(ctx, Request{}, []SourceKey{SourceDataset, SourceReputation})

		result, ok := bundle.Result(SourceReputation)
		s.True(ok)
		s.Equal(StatusFatalError, result.Status)
		s.Contains(result.Message, "no client registered")
	})
}

// =============================================================================
// Probe Tests
// =============================================================================

func (s *AggregatorSuite) TestProbe() {
	ctx := context.Background()

	s.Run("probe outcomes are classified like fetches", func() {
		agg, err := NewAggregator([]SourceClient{
			&stubClient{key: SourceRecordStore},
			&stubClient{key: SourceDataset, probeErr: sentinel.ErrUnavailable},
			&stubClient{key: SourceReputation, probeErr: sentinel.ErrDenied},
		})
		s.Require().NoError(err)

		bundle := agg.Probe(ctx, []SourceKey{SourceRecordStore, SourceDataset, SourceReputation})

		statuses := bundle.Statuses()
		s.Equal(StatusSuccess, statuses[SourceRecordStore])
		s.Equal(StatusTransientError, statuses[SourceDataset])
		s.Equal(StatusFatalError, statuses[SourceReputation])
	})

	s.Run("a probe set naming a source twice checks it once", func() {
		agg, err := NewAggregator([]SourceClient{
			&stubClient{key: SourceDataset, probeErr: sentinel.ErrUnavailable},
		})
		s.Require().NoError(err)

		bundle := agg.Probe(ctx, []SourceKey{SourceDataset, SourceDataset})

		s.Equal(1, bundle.Len())
		s.Equal(StatusTransientError, bundle.Statuses()[SourceDataset])
	})
}
