// Package adapters binds backend ports to the assessment SourceClient
// capability: each adapter enforces a per-call timeout no greater than the
// request deadline and classifies failures into the source taxonomy so
// nothing backend-specific crosses into the aggregation core.
package adapters

import (
	"context"
	"time"

	"assay/internal/assessment"
	"assay/internal/assessment/ports"
)

// RecordClient exposes the relational record store as an assessment source.
type RecordClient struct {
	source  ports.RecordSource
	timeout time.Duration
}

// NewRecordClient wraps a record source with the per-call timeout.
func NewRecordClient(source ports.RecordSource, timeout time.Duration) *RecordClient {
	return &RecordClient{source: source, timeout: timeout}
}

func (c *RecordClient) Key() assessment.SourceKey {
	return assessment.SourceRecordStore
}

func (c *RecordClient) Fetch(ctx context.Context, req assessment.Request) assessment.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	record, err := c.source.FetchCustomer(ctx, req.CustomerID)
	if err != nil {
		return assessment.Classify(err)
	}
	return assessment.Succeed(record)
}

func (c *RecordClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.source.Ping(ctx)
}
