package handler

import (
	"time"

	"assay/internal/assessment"
)

// AssessResponse is the wire shape of a composite assessment.
type AssessResponse struct {
	CorrelationID   string            `json:"correlation_id"`
	CustomerID      string            `json:"customer_id"`
	Period          string            `json:"period"`
	SourceStatus    map[string]string `json:"source_status"`
	Score           *float64          `json:"score,omitempty"`
	Tier            string            `json:"tier,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Completeness    string            `json:"completeness"`
	AssessedAt      time.Time         `json:"assessed_at"`
}

// FromAssessment converts the domain result to the wire shape.
func FromAssessment(result *assessment.CompositeAssessment) AssessResponse {
	statuses := make(map[string]string, len(result.SourceStatus))
	for key, status := range result.SourceStatus {
		statuses[key.String()] = string(status)
	}
	return AssessResponse{
		CorrelationID:   result.CorrelationID,
		CustomerID:      result.CustomerID.String(),
		Period:          result.Period.String(),
		SourceStatus:    statuses,
		Score:           result.Score,
		Tier:            string(result.Tier),
		Recommendations: result.Recommendations,
		Completeness:    string(result.Completeness),
		AssessedAt:      result.AssessedAt,
	}
}

// HealthResponse is the wire shape of the health report.
type HealthResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Sources   map[string]SourceHealth `json:"sources"`
}

// SourceHealth is one probed source on the wire.
type SourceHealth struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// FromHealthReport converts the domain report to the wire shape.
func FromHealthReport(report *assessment.HealthReport) HealthResponse {
	sources := make(map[string]SourceHealth, len(report.Sources))
	for key, health := range report.Sources {
		sources[key.String()] = SourceHealth{Healthy: health.Healthy, Detail: health.Detail}
	}
	return HealthResponse{
		Status:    report.Status,
		Timestamp: report.Timestamp,
		Sources:   sources,
	}
}
