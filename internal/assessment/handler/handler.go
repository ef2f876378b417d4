// Package handler wires assessment endpoints to the assessment service.
// It is a thin transport layer: decode, delegate, encode.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"assay/internal/assessment"
	"assay/pkg/platform/httputil"
	"assay/pkg/requestcontext"
)

// Service defines the assessment operations the handler exposes.
type Service interface {
	Assess(ctx context.Context, input assessment.AssessInput) (*assessment.CompositeAssessment, error)
	CheckHealth(ctx context.Context) *assessment.HealthReport
}

// Handler exposes assessment operations over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an assessment handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts assessment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/assessments", h.HandleAssess)
}

// RegisterHealth mounts the unauthenticated health endpoint.
func (h *Handler) RegisterHealth(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
}

// HandleAssess handles POST /assessments requests.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := httputil.Decode[AssessRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Assess(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment failed",
			"request_id", requestID,
			"customer_id", req.CustomerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment served",
		"request_id", requestID,
		"customer_id", req.CustomerID,
		"completeness", result.Completeness,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(result))
}

// HandleHealth handles GET /healthz requests. A degraded source set answers
// 503 so load balancers can rotate the instance out, but the body always
// carries the per-source detail.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := h.service.CheckHealth(r.Context())

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, FromHealthReport(report))
}
