package adapters

import (
	"context"
	"time"

	"assay/internal/assessment"
	"assay/internal/assessment/ports"
)

// ReputationClient exposes the external risk service as an assessment
// source. The screen is keyed on the caller-supplied display name when
// present, falling back to the customer ID.
type ReputationClient struct {
	source  ports.ReputationSource
	timeout time.Duration
}

// NewReputationClient wraps a reputation source with the per-call timeout.
func NewReputationClient(source ports.ReputationSource, timeout time.Duration) *ReputationClient {
	return &ReputationClient{source: source, timeout: timeout}
}

func (c *ReputationClient) Key() assessment.SourceKey {
	return assessment.SourceReputation
}

func (c *ReputationClient) Fetch(ctx context.Context, req assessment.Request) assessment.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.CustomerID.String()
	}

	report, err := c.source.CheckReputation(ctx, displayName, req.EntityName)
	if err != nil {
		return assessment.Classify(err)
	}
	return assessment.Succeed(report)
}

func (c *ReputationClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.source.Ping(ctx)
}
