// Package audit records assessment outcomes on a Kafka topic for compliance
// review. Publishing is asynchronous: the service hands events to a bounded
// inbox and a worker drains them, so a slow broker never holds a request.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"assay/internal/assessment/ports"
	"assay/internal/platform/kafka"
)

// KafkaPublisher writes events to the audit topic keyed by customer so all
// assessments of one customer land in one partition, in order.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher constructs a Kafka-backed publisher.
func NewKafkaPublisher(producer *kafka.Producer) (*KafkaPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("kafka producer is required")
	}
	return &KafkaPublisher{producer: producer}, nil
}

var _ ports.AuditPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Emit(ctx context.Context, event ports.AuditEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return p.producer.Produce(ctx, []byte(event.CustomerID), value)
}

// NoopPublisher discards events. Used when no brokers are configured and in
// tests that don't assert on auditing.
type NoopPublisher struct{}

var _ ports.AuditPublisher = NoopPublisher{}

func (NoopPublisher) Emit(context.Context, ports.AuditEvent) error {
	return nil
}
