package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	"assay/pkg/platform/sentinel"
)

// =============================================================================
// Memory Record Store Test Suite
// =============================================================================

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemoryStoreSuite) customerID(raw string) domain.CustomerID {
	id, err := domain.ParseCustomerID(raw)
	s.Require().NoError(err)
	return id
}

func (s *MemoryStoreSuite) TestFetchCustomer() {
	ctx := context.Background()

	s.Run("unknown customer reports absence", func() {
		_, err := s.store.FetchCustomer(ctx, s.customerID("404"))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("stored record is returned by value", func() {
		id := s.customerID("42")
		s.store.Put(ports.CustomerRecord{CustomerID: id, FullName: "Ada Lovelace", Balance: 1200})

		record, err := s.store.FetchCustomer(ctx, id)
		s.Require().NoError(err)
		s.Equal("Ada Lovelace", record.FullName)

		// Mutating the returned copy must not affect the store.
		record.FullName = "changed"
		again, err := s.store.FetchCustomer(ctx, id)
		s.Require().NoError(err)
		s.Equal("Ada Lovelace", again.FullName)
	})

	s.Run("put replaces an existing record", func() {
		id := s.customerID("42")
		s.store.Put(ports.CustomerRecord{CustomerID: id, Segment: "retail"})
		s.store.Put(ports.CustomerRecord{CustomerID: id, Segment: "private"})

		record, err := s.store.FetchCustomer(ctx, id)
		s.Require().NoError(err)
		s.Equal("private", record.Segment)
	})
}

func (s *MemoryStoreSuite) TestPing() {
	ctx := context.Background()

	s.Run("healthy by default", func() {
		s.NoError(s.store.Ping(ctx))
	})

	s.Run("injected failure surfaces", func() {
		s.store.SetPingError(sentinel.ErrUnavailable)
		s.ErrorIs(s.store.Ping(ctx), sentinel.ErrUnavailable)
	})
}
