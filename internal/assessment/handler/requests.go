package handler

import (
	"time"

	"assay/internal/assessment"
)

// AssessRequest is the wire shape of POST /assessments.
type AssessRequest struct {
	CustomerID string `json:"customer_id"`
	Period     string `json:"period"`
	// DeadlineMS optionally bounds the whole assessment, in milliseconds.
	DeadlineMS int64 `json:"deadline_ms,omitempty"`
	// DisplayName and EntityName optionally refine the reputation screen.
	DisplayName string `json:"display_name,omitempty"`
	EntityName  string `json:"entity_name,omitempty"`
}

// ToInput converts the wire request into the domain input. Field validation
// belongs to the service; this is shape conversion only.
func (r AssessRequest) ToInput() assessment.AssessInput {
	return assessment.AssessInput{
		CustomerID:  r.CustomerID,
		Period:      r.Period,
		Deadline:    time.Duration(r.DeadlineMS) * time.Millisecond,
		DisplayName: r.DisplayName,
		EntityName:  r.EntityName,
	}
}
