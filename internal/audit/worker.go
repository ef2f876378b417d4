package audit

import (
	"context"
	"fmt"
	"log/slog"

	"assay/internal/assessment/ports"
)

// AsyncPublisher queues events into a bounded inbox for the Worker to drain.
// Emit never blocks: when the inbox is full the event is dropped and counted
// against the log, because assessments must not back up behind auditing.
type AsyncPublisher struct {
	inbox  chan ports.AuditEvent
	logger *slog.Logger
}

// NewAsyncPublisher creates the inbox shared by publisher and worker.
func NewAsyncPublisher(size int, logger *slog.Logger) (*AsyncPublisher, error) {
	if size <= 0 {
		return nil, fmt.Errorf("inbox size must be positive")
	}
	return &AsyncPublisher{inbox: make(chan ports.AuditEvent, size), logger: logger}, nil
}

var _ ports.AuditPublisher = (*AsyncPublisher)(nil)

func (p *AsyncPublisher) Emit(ctx context.Context, event ports.AuditEvent) error {
	select {
	case p.inbox <- event:
		return nil
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, dropping event",
				"correlation_id", event.CorrelationID,
			)
		}
		return nil
	}
}

// Worker drains the inbox into a sink publisher. It keeps background
// processing testable: tests swap the sink without wiring Kafka.
type Worker struct {
	sink   ports.AuditPublisher
	inbox  <-chan ports.AuditEvent
	logger *slog.Logger
}

// NewWorker binds a sink to the async publisher's inbox.
func NewWorker(sink ports.AuditPublisher, publisher *AsyncPublisher, logger *slog.Logger) (*Worker, error) {
	if sink == nil {
		return nil, fmt.Errorf("audit sink is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("async publisher is required")
	}
	return &Worker{sink: sink, inbox: publisher.inbox, logger: logger}, nil
}

// Run consumes events until the context is cancelled. Sink failures are
// logged and the worker keeps going; one bad event must not stall the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Emit(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "audit event publish failed",
					"correlation_id", event.CorrelationID,
					"error", err,
				)
			}
		}
	}
}
