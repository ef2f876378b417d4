package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"assay/internal/assessment"
	"assay/internal/assessment/ports"
	"assay/pkg/domain"
)

// AssessCustomerInput is the MCP tool input for a composite assessment.
type AssessCustomerInput struct {
	CustomerID  string `json:"customer_id" jsonschema:"customer identifier"`
	Period      string `json:"period" jsonschema:"reporting period in YYYY-MM form"`
	DeadlineMS  int64  `json:"deadline_ms,omitempty" jsonschema:"optional overall deadline in milliseconds"`
	DisplayName string `json:"display_name,omitempty" jsonschema:"optional display name for reputation screening"`
	EntityName  string `json:"entity_name,omitempty" jsonschema:"optional entity name for reputation screening"`
}

// AssessCustomerResult is the MCP tool output for a composite assessment.
type AssessCustomerResult struct {
	CorrelationID   string            `json:"correlation_id" jsonschema:"identifier shared by all source calls of this request"`
	CustomerID      string            `json:"customer_id" jsonschema:"assessed customer identifier"`
	Period          string            `json:"period" jsonschema:"assessed reporting period"`
	SourceStatus    map[string]string `json:"source_status" jsonschema:"per-source outcome classification"`
	Score           *float64          `json:"score,omitempty" jsonschema:"composite score when required sources succeeded"`
	Tier            string            `json:"tier,omitempty" jsonschema:"assigned service tier"`
	Recommendations []string          `json:"recommendations,omitempty" jsonschema:"tier-driven recommendations"`
	Completeness    string            `json:"completeness" jsonschema:"complete, partial, or failed"`
	AssessedAt      time.Time         `json:"assessed_at" jsonschema:"assessment timestamp"`
}

// CustomerInfoInput is the MCP tool input for a record-store lookup.
type CustomerInfoInput struct {
	CustomerID string `json:"customer_id" jsonschema:"customer identifier"`
}

// CustomerInfoResult is the MCP tool output for a record-store lookup.
type CustomerInfoResult struct {
	CustomerID    string    `json:"customer_id" jsonschema:"customer identifier"`
	FullName      string    `json:"full_name" jsonschema:"customer full name"`
	Segment       string    `json:"segment" jsonschema:"customer segment"`
	AccountNumber string    `json:"account_number" jsonschema:"primary account number"`
	AccountType   string    `json:"account_type" jsonschema:"primary account type"`
	Balance       float64   `json:"balance" jsonschema:"primary account balance"`
	OpenedAt      time.Time `json:"opened_at" jsonschema:"primary account opening date"`
}

// FundHoldingsInput is the MCP tool input for a holdings dataset read.
type FundHoldingsInput struct {
	CustomerID string `json:"customer_id" jsonschema:"customer identifier"`
	Period     string `json:"period" jsonschema:"reporting period in YYYY-MM form"`
}

// FundHoldingsPosition is one position within the holdings output.
type FundHoldingsPosition struct {
	Fund       string  `json:"fund" jsonschema:"fund name"`
	AssetClass string  `json:"asset_class" jsonschema:"asset class of the fund"`
	Units      float64 `json:"units" jsonschema:"units held"`
	Value      float64 `json:"value" jsonschema:"position market value"`
}

// FundHoldingsResult is the MCP tool output for a holdings dataset read.
type FundHoldingsResult struct {
	CustomerID string                 `json:"customer_id" jsonschema:"customer identifier"`
	Period     string                 `json:"period" jsonschema:"reporting period"`
	TotalValue float64                `json:"total_value" jsonschema:"sum of all position values"`
	Positions  []FundHoldingsPosition `json:"positions" jsonschema:"individual fund positions"`
	Allocation map[string]float64     `json:"allocation" jsonschema:"total value per asset class"`
}

// ReputationInput is the MCP tool input for a reputation screen.
type ReputationInput struct {
	DisplayName string `json:"display_name" jsonschema:"name to screen against sanctions and news"`
	EntityName  string `json:"entity_name,omitempty" jsonschema:"optional related entity name"`
}

// ReputationResult is the MCP tool output for a reputation screen.
type ReputationResult struct {
	Score            float64   `json:"score" jsonschema:"reputation score from 0 to 100"`
	RiskFactors      []string  `json:"risk_factors,omitempty" jsonschema:"identified risk factors"`
	SanctionsMatches []string  `json:"sanctions_matches,omitempty" jsonschema:"matched sanctions list entries"`
	NewsSentiment    string    `json:"news_sentiment" jsonschema:"aggregate news sentiment"`
	CheckedAt        time.Time `json:"checked_at" jsonschema:"screening timestamp"`
}

// HealthCheckInput is the MCP tool input for a liveness probe.
type HealthCheckInput struct{}

// HealthCheckResult is the MCP tool output for a liveness probe.
type HealthCheckResult struct {
	Status       string            `json:"status" jsonschema:"ok or degraded"`
	Timestamp    time.Time         `json:"timestamp" jsonschema:"probe timestamp"`
	Dependencies map[string]string `json:"dependencies" jsonschema:"per-source health detail"`
}

// AssessCustomerTool defines the MCP tool schema for composite assessments.
func AssessCustomerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "assess_customer",
		Description: "Runs a composite customer assessment across all configured sources",
	}
}

// CustomerInfoTool defines the MCP tool schema for record-store lookups.
func CustomerInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_customer_info",
		Description: "Fetches the customer record and primary account from the record store",
	}
}

// FundHoldingsTool defines the MCP tool schema for holdings dataset reads.
func FundHoldingsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_fund_holdings",
		Description: "Reads the per-period fund holdings dataset for a customer",
	}
}

// ReputationTool defines the MCP tool schema for reputation screens.
func ReputationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_credit_worthiness",
		Description: "Screens a name against sanctions and news reputation sources",
	}
}

// HealthCheckTool defines the MCP tool schema for liveness probes.
func HealthCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "health_check",
		Description: "Probes every configured source and reports aggregate health",
	}
}

// AssessCustomerHandler runs the full assessment pipeline.
func AssessCustomerHandler(service AssessService) mcp.ToolHandlerFor[AssessCustomerInput, AssessCustomerResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssessCustomerInput) (*mcp.CallToolResult, AssessCustomerResult, error) {
		result, err := service.Assess(ctx, assessment.AssessInput{
			CustomerID:  input.CustomerID,
			Period:      input.Period,
			Deadline:    time.Duration(input.DeadlineMS) * time.Millisecond,
			DisplayName: input.DisplayName,
			EntityName:  input.EntityName,
		})
		if err != nil {
			return nil, AssessCustomerResult{}, err
		}

		statuses := make(map[string]string, len(result.SourceStatus))
		for key, status := range result.SourceStatus {
			statuses[key.String()] = string(status)
		}
		return nil, AssessCustomerResult{
			CorrelationID:   result.CorrelationID,
			CustomerID:      result.CustomerID.String(),
			Period:          result.Period.String(),
			SourceStatus:    statuses,
			Score:           result.Score,
			Tier:            string(result.Tier),
			Recommendations: result.Recommendations,
			Completeness:    string(result.Completeness),
			AssessedAt:      result.AssessedAt,
		}, nil
	}
}

// CustomerInfoHandler reads one customer record.
func CustomerInfoHandler(records ports.RecordSource) mcp.ToolHandlerFor[CustomerInfoInput, CustomerInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CustomerInfoInput) (*mcp.CallToolResult, CustomerInfoResult, error) {
		customerID, err := domain.ParseCustomerID(input.CustomerID)
		if err != nil {
			return nil, CustomerInfoResult{}, err
		}
		record, err := records.FetchCustomer(ctx, customerID)
		if err != nil {
			return nil, CustomerInfoResult{}, err
		}
		return nil, CustomerInfoResult{
			CustomerID:    record.CustomerID.String(),
			FullName:      record.FullName,
			Segment:       record.Segment,
			AccountNumber: record.AccountNumber,
			AccountType:   record.AccountType,
			Balance:       record.Balance,
			OpenedAt:      record.OpenedAt,
		}, nil
	}
}

// FundHoldingsHandler reads one customer's holdings for a period.
func FundHoldingsHandler(holdings ports.HoldingsSource) mcp.ToolHandlerFor[FundHoldingsInput, FundHoldingsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FundHoldingsInput) (*mcp.CallToolResult, FundHoldingsResult, error) {
		customerID, err := domain.ParseCustomerID(input.CustomerID)
		if err != nil {
			return nil, FundHoldingsResult{}, err
		}
		period, err := domain.ParsePeriod(input.Period)
		if err != nil {
			return nil, FundHoldingsResult{}, err
		}
		summary, err := holdings.FetchHoldings(ctx, customerID, period)
		if err != nil {
			return nil, FundHoldingsResult{}, err
		}

		positions := make([]FundHoldingsPosition, 0, len(summary.Positions))
		for _, position := range summary.Positions {
			positions = append(positions, FundHoldingsPosition{
				Fund:       position.Fund,
				AssetClass: position.AssetClass,
				Units:      position.Units,
				Value:      position.Value,
			})
		}
		return nil, FundHoldingsResult{
			CustomerID: summary.CustomerID.String(),
			Period:     summary.Period.String(),
			TotalValue: summary.TotalValue,
			Positions:  positions,
			Allocation: summary.Allocation,
		}, nil
	}
}

// ReputationHandler screens one name.
func ReputationHandler(reputation ports.ReputationSource) mcp.ToolHandlerFor[ReputationInput, ReputationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReputationInput) (*mcp.CallToolResult, ReputationResult, error) {
		report, err := reputation.CheckReputation(ctx, input.DisplayName, input.EntityName)
		if err != nil {
			return nil, ReputationResult{}, err
		}
		return nil, ReputationResult{
			Score:            report.Score,
			RiskFactors:      report.RiskFactors,
			SanctionsMatches: report.SanctionsMatches,
			NewsSentiment:    report.NewsSentiment,
			CheckedAt:        report.CheckedAt,
		}, nil
	}
}

// HealthCheckHandler probes every configured source.
func HealthCheckHandler(service AssessService) mcp.ToolHandlerFor[HealthCheckInput, HealthCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HealthCheckInput) (*mcp.CallToolResult, HealthCheckResult, error) {
		report := service.CheckHealth(ctx)

		dependencies := make(map[string]string, len(report.Sources))
		for key, health := range report.Sources {
			detail := "healthy"
			if !health.Healthy {
				detail = health.Detail
				if detail == "" {
					detail = "unhealthy"
				}
			}
			dependencies[key.String()] = detail
		}
		return nil, HealthCheckResult{
			Status:       report.Status,
			Timestamp:    report.Timestamp,
			Dependencies: dependencies,
		}, nil
	}
}
