package ports

import (
	"context"
	"time"
)

// AuditPublisher records assessment outcomes for compliance review.
// Implementations must be safe for concurrent use.
type AuditPublisher interface {
	Emit(ctx context.Context, event AuditEvent) error
}

// AuditEvent is one assessment outcome record.
type AuditEvent struct {
	CorrelationID string            `json:"correlation_id"`
	CustomerID    string            `json:"customer_id"`
	Period        string            `json:"period"`
	Completeness  string            `json:"completeness"`
	Tier          string            `json:"tier,omitempty"`
	SourceStatus  map[string]string `json:"source_status"`
	At            time.Time         `json:"at"`
}
