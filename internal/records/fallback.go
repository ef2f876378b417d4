package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	"assay/pkg/platform/circuit"
	"assay/pkg/platform/sentinel"
)

// FallbackStore wraps a primary record source with an in-memory snapshot of
// successfully fetched records. Every successful primary read refreshes the
// snapshot; when the primary keeps failing and the circuit opens, reads are
// served from the snapshot so assessments can keep running on last-known
// master data during an outage.
type FallbackStore struct {
	primary  ports.RecordSource
	snapshot *MemoryStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

// NewFallbackStore wraps primary with snapshot-backed degraded reads.
func NewFallbackStore(primary ports.RecordSource, logger *slog.Logger) (*FallbackStore, error) {
	if primary == nil {
		return nil, fmt.Errorf("primary record source is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{
		primary:  primary,
		snapshot: NewMemory(),
		breaker:  circuit.New("record_store"),
		logger:   logger,
	}, nil
}

var _ ports.RecordSource = (*FallbackStore)(nil)

// FetchCustomer reads from the primary and falls back to the snapshot once
// the circuit opens. A not-found answer from a reachable primary is
// authoritative and never served from the snapshot.
func (s *FallbackStore) FetchCustomer(ctx context.Context, customerID domain.CustomerID) (*ports.CustomerRecord, error) {
	record, err := s.primary.FetchCustomer(ctx, customerID)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.Info("record store recovered, circuit closed")
		}
		s.snapshot.Put(*record)
		return record, nil
	}

	if errors.Is(err, sentinel.ErrNotFound) {
		s.breaker.RecordSuccess()
		return nil, err
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.Warn("record store circuit opened, serving snapshot reads",
			"error", err)
	}
	if !useFallback {
		return nil, err
	}

	cached, snapErr := s.snapshot.FetchCustomer(ctx, customerID)
	if snapErr != nil {
		return nil, err
	}
	s.logger.Warn("serving customer record from snapshot",
		"customer_id", customerID.String())
	return cached, nil
}

// Ping probes the primary store. Snapshot availability does not make a
// broken primary healthy.
func (s *FallbackStore) Ping(ctx context.Context) error {
	return s.primary.Ping(ctx)
}
