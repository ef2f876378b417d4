package adapters

import (
	"context"
	"time"

	"assay/internal/assessment"
	"assay/internal/assessment/ports"
)

// HoldingsClient exposes the per-period dataset as an assessment source.
type HoldingsClient struct {
	source  ports.HoldingsSource
	timeout time.Duration
}

// NewHoldingsClient wraps a holdings source with the per-call timeout.
func NewHoldingsClient(source ports.HoldingsSource, timeout time.Duration) *HoldingsClient {
	return &HoldingsClient{source: source, timeout: timeout}
}

func (c *HoldingsClient) Key() assessment.SourceKey {
	return assessment.SourceDataset
}

func (c *HoldingsClient) Fetch(ctx context.Context, req assessment.Request) assessment.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	summary, err := c.source.FetchHoldings(ctx, req.CustomerID, req.Period)
	if err != nil {
		return assessment.Classify(err)
	}
	return assessment.Succeed(summary)
}

func (c *HoldingsClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.source.Ping(ctx)
}
