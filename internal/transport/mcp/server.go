// Package mcp exposes the assessment pipeline as Model Context Protocol
// tools over stdio, so agent runtimes can drive assessments directly.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"assay/internal/assessment"
	"assay/internal/assessment/ports"
)

const (
	serverName    = "assay"
	serverVersion = "1.0.0"
)

// AssessService is the slice of the assessment service the tools need.
type AssessService interface {
	Assess(ctx context.Context, input assessment.AssessInput) (*assessment.CompositeAssessment, error)
	CheckHealth(ctx context.Context) *assessment.HealthReport
}

// Deps carries everything the MCP tool set binds to.
type Deps struct {
	Service    AssessService
	Records    ports.RecordSource
	Holdings   ports.HoldingsSource
	Reputation ports.ReputationSource
}

// NewServer builds an MCP server with every assessment tool registered.
func NewServer(deps Deps) (*mcp.Server, error) {
	if deps.Service == nil {
		return nil, fmt.Errorf("assess service is required")
	}
	if deps.Records == nil {
		return nil, fmt.Errorf("record source is required")
	}
	if deps.Holdings == nil {
		return nil, fmt.Errorf("holdings source is required")
	}
	if deps.Reputation == nil {
		return nil, fmt.Errorf("reputation source is required")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, AssessCustomerTool(), AssessCustomerHandler(deps.Service))
	mcp.AddTool(server, CustomerInfoTool(), CustomerInfoHandler(deps.Records))
	mcp.AddTool(server, FundHoldingsTool(), FundHoldingsHandler(deps.Holdings))
	mcp.AddTool(server, ReputationTool(), ReputationHandler(deps.Reputation))
	mcp.AddTool(server, HealthCheckTool(), HealthCheckHandler(deps.Service))

	return server, nil
}

// Run serves the tool set over stdio until the context is cancelled.
func Run(ctx context.Context, deps Deps) error {
	server, err := NewServer(deps)
	if err != nil {
		return err
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}
