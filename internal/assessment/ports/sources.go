// Package ports defines the interfaces and port models the assessment
// domain depends on. Adapters translate backend-specific records into these
// models so the domain never imports a driver, file codec, or HTTP client.
package ports

//go:generate mockgen -source=sources.go -destination=mocks/mocks.go -package=mocks RecordSource,HoldingsSource,ReputationSource
//go:generate mockgen -source=audit.go -destination=mocks/audit_mocks.go -package=mocks AuditPublisher

import (
	"context"
	"time"

	"assay/pkg/domain"
)

// RecordSource supplies customer master data from the relational store.
type RecordSource interface {
	// FetchCustomer retrieves the customer record joined with its primary
	// account. Returns sentinel.ErrNotFound (wrapped) when the customer
	// does not exist.
	FetchCustomer(ctx context.Context, customerID domain.CustomerID) (*CustomerRecord, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// CustomerRecord is the port model for customer master data.
type CustomerRecord struct {
	CustomerID    domain.CustomerID
	FullName      string
	Segment       string
	AccountNumber string
	AccountType   string
	Balance       float64
	OpenedAt      time.Time
}

// HoldingsSource supplies the per-period fund holdings dataset.
type HoldingsSource interface {
	// FetchHoldings reads the holdings summary for one customer and
	// period. Returns sentinel.ErrNotFound (wrapped) when no dataset
	// exists for the key.
	FetchHoldings(ctx context.Context, customerID domain.CustomerID, period domain.Period) (*HoldingsSummary, error)

	// Ping verifies the dataset location is accessible.
	Ping(ctx context.Context) error
}

// HoldingsSummary is the port model for one customer-period dataset.
type HoldingsSummary struct {
	CustomerID domain.CustomerID
	Period     domain.Period
	TotalValue float64
	Positions  []Position
	// Allocation maps asset class to the summed value of its positions.
	Allocation map[string]float64
}

// Position is a single fund holding line.
type Position struct {
	Fund       string
	AssetClass string
	Units      float64
	Value      float64
}

// ReputationSource supplies risk data from the external reputation service.
type ReputationSource interface {
	// CheckReputation screens a display name (and optional entity name)
	// against sanctions and news sources.
	CheckReputation(ctx context.Context, displayName, entityName string) (*ReputationReport, error)

	// Ping verifies the remote service is reachable.
	Ping(ctx context.Context) error
}

// ReputationReport is the port model for the external risk payload.
type ReputationReport struct {
	// Score is the reputation-derived sub-score on a 0-100 scale.
	Score            float64
	RiskFactors      []string
	SanctionsMatches []string
	NewsSentiment    string
	CheckedAt        time.Time
}
