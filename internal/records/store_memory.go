package records

import (
	"context"
	"fmt"
	"sync"

	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	"assay/pkg/platform/sentinel"
)

// MemoryStore is an in-memory record source for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.CustomerID]ports.CustomerRecord

	// pingErr, when set, makes Ping fail to simulate an unreachable store.
	pingErr error
}

// NewMemory constructs an empty in-memory record store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[domain.CustomerID]ports.CustomerRecord)}
}

var _ ports.RecordSource = (*MemoryStore)(nil)

// Put stores or replaces one customer record.
func (s *MemoryStore) Put(record ports.CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.CustomerID] = record
}

// SetPingError forces subsequent pings to fail with err.
func (s *MemoryStore) SetPingError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

func (s *MemoryStore) FetchCustomer(_ context.Context, customerID domain.CustomerID) (*ports.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[customerID]
	if !ok {
		return nil, fmt.Errorf("fetch customer %s: %w", customerID, sentinel.ErrNotFound)
	}
	copied := record
	return &copied, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}
