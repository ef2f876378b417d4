// Package records implements the customer record source against PostgreSQL.
// Stores are pure I/O; classification of failures into the shared sentinel
// taxonomy happens here, at the driver boundary.
package records

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	"assay/pkg/platform/sentinel"
)

// PostgresStore reads customer master data from PostgreSQL. The *sql.DB pool
// is process-wide, owned by main, and shared across concurrent requests.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ ports.RecordSource = (*PostgresStore)(nil)

// FetchCustomer retrieves the customer joined with its primary account.
func (s *PostgresStore) FetchCustomer(ctx context.Context, customerID domain.CustomerID) (*ports.CustomerRecord, error) {
	query := `
		SELECT c.id, c.full_name, c.segment, a.account_number, a.account_type, a.balance, a.opened_at
		FROM customers c
		LEFT JOIN accounts a ON c.id = a.customer_id
		WHERE c.id = $1
		ORDER BY a.opened_at
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, customerID.String())

	var record ports.CustomerRecord
	var id string
	var accountNumber, accountType sql.NullString
	var balance sql.NullFloat64
	var openedAt sql.NullTime
	if err := row.Scan(&id, &record.FullName, &record.Segment, &accountNumber, &accountType, &balance, &openedAt); err != nil {
		return nil, classify("fetch customer", err)
	}

	record.CustomerID = domain.CustomerID(id)
	record.AccountNumber = accountNumber.String
	record.AccountType = accountType.String
	record.Balance = balance.Float64
	record.OpenedAt = openedAt.Time
	return &record, nil
}

// Ping verifies the pool can reach the database.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

// classify wraps driver errors with the sentinel value adapters match on.
// Anything unrecognized stays unwrapped so the aggregation layer records it
// as fatal rather than retryable.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "42501" || pqErr.Code.Class() == "28":
			// insufficient_privilege / invalid_authorization
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, sentinel.ErrDenied)
		case pqErr.Code.Class() == "08" || pqErr.Code.Class() == "53" || pqErr.Code.Class() == "57":
			// connection, resource, operator-intervention classes
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, sentinel.ErrUnavailable)
		case pqErr.Code.Class() == "22":
			// data exception: stored data this service cannot read
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, sentinel.ErrMalformed)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}
