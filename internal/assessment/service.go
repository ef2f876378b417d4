package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"assay/internal/assessment/metrics"
	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	dErrors "assay/pkg/domain-errors"
	"assay/pkg/requestcontext"
)

const tracerName = "assay/assessment"

// AssessInput is the caller-facing request for one assessment.
type AssessInput struct {
	CustomerID string
	Period     string
	// Deadline overrides the configured default when positive.
	Deadline time.Duration
	// DisplayName and EntityName are optional hints for the reputation
	// screen.
	DisplayName string
	EntityName  string
}

// HealthReport is the result of probing source liveness.
type HealthReport struct {
	Status    string
	Timestamp time.Time
	Sources   map[SourceKey]SourceHealth
}

// SourceHealth describes one probed source.
type SourceHealth struct {
	Healthy bool
	Detail  string
}

// Service orchestrates the aggregator and the scoring engine and shapes the
// final response. Degraded outcomes are well-formed results, never errors;
// Assess returns an error only for invalid input.
type Service struct {
	aggregator *Aggregator
	engine     *Engine
	cfg        Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      ports.AuditPublisher
	tracer     trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) ServiceOption {
	return func(s *Service) {
		s.audit = publisher
	}
}

// NewService constructs the assessment service.
func NewService(aggregator *Aggregator, engine *Engine, cfg Config, opts ...ServiceOption) (*Service, error) {
	if aggregator == nil {
		return nil, fmt.Errorf("aggregator is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("assessment config: %w", err)
	}

	svc := &Service{
		aggregator: aggregator,
		engine:     engine,
		cfg:        cfg,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Assess fans the request out to every configured source, scores the
// gathered bundle, and returns the composite result.
func (s *Service) Assess(ctx context.Context, input AssessInput) (*CompositeAssessment, error) {
	start := time.Now()

	req, err := s.buildRequest(ctx, input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithDeadline(ctx, req.Deadline)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "assessment.assess",
		trace.WithAttributes(
			attribute.String("customer_id", req.CustomerID.String()),
			attribute.String("period", req.Period.String()),
		),
	)
	defer span.End()

	bundle := s.aggregator.Gather(ctx, req, s.cfg.RequestedSources())
	score, tier, completeness := s.engine.Score(bundle)

	result := &CompositeAssessment{
		CorrelationID:   req.CorrelationID,
		CustomerID:      req.CustomerID,
		Period:          req.Period,
		SourceStatus:    bundle.Statuses(),
		Score:           score,
		Tier:            tier,
		Recommendations: Recommendations(tier),
		Completeness:    completeness,
		AssessedAt:      requestcontext.Now(ctx),
	}

	span.SetAttributes(attribute.String("completeness", string(completeness)))
	s.metrics.IncrementOutcome(string(completeness), string(tier))
	s.metrics.ObserveAssessLatency(time.Since(start))
	s.emitAudit(ctx, result)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "assessment completed",
			"correlation_id", req.CorrelationID,
			"customer_id", req.CustomerID,
			"period", req.Period,
			"completeness", completeness,
			"tier", tier,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return result, nil
}

// CheckHealth probes source liveness without scoring anything. A probe
// failure marks that source unhealthy and degrades the overall status; the
// report itself always succeeds.
func (s *Service) CheckHealth(ctx context.Context) *HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SourceTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "assessment.health")
	defer span.End()

	bundle := s.aggregator.Probe(ctx, s.cfg.HealthProbes)

	report := &HealthReport{
		Status:    "ok",
		Timestamp: requestcontext.Now(ctx),
		Sources:   make(map[SourceKey]SourceHealth, bundle.Len()),
	}
	for key, status := range bundle.Statuses() {
		result, _ := bundle.Result(key)
		healthy := status == StatusSuccess || status == StatusNotFound
		if !healthy {
			report.Status = "degraded"
		}
		report.Sources[key] = SourceHealth{Healthy: healthy, Detail: result.Message}
	}
	return report
}

func (s *Service) buildRequest(ctx context.Context, input AssessInput) (Request, error) {
	customerID, err := domain.ParseCustomerID(input.CustomerID)
	if err != nil {
		return Request{}, dErrors.New(dErrors.CodeBadRequest, err.Error())
	}
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return Request{}, dErrors.New(dErrors.CodeBadRequest, err.Error())
	}

	deadline := input.Deadline
	if deadline <= 0 {
		deadline = s.cfg.DefaultDeadline
	}

	correlationID := requestcontext.RequestID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	return Request{
		CustomerID:    customerID,
		Period:        period,
		CorrelationID: correlationID,
		Deadline:      requestcontext.Now(ctx).Add(deadline),
		DisplayName:   input.DisplayName,
		EntityName:    input.EntityName,
	}, nil
}

// emitAudit records the outcome; audit failures are logged, never surfaced,
// because the assessment itself already succeeded.
func (s *Service) emitAudit(ctx context.Context, result *CompositeAssessment) {
	if s.audit == nil {
		return
	}

	statuses := make(map[string]string, len(result.SourceStatus))
	for key, status := range result.SourceStatus {
		statuses[key.String()] = string(status)
	}

	event := ports.AuditEvent{
		CorrelationID: result.CorrelationID,
		CustomerID:    result.CustomerID.String(),
		Period:        result.Period.String(),
		Completeness:  string(result.Completeness),
		Tier:          string(result.Tier),
		SourceStatus:  statuses,
		At:            result.AssessedAt,
	}
	if err := s.audit.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"correlation_id", result.CorrelationID,
			"error", err,
		)
	}
}
