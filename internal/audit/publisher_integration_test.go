//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"assay/internal/assessment/ports"
	"assay/internal/audit"
	"assay/internal/platform/config"
	"assay/internal/platform/kafka"
	"assay/pkg/testutil/containers"
)

const testTopic = "assay.assessments.test"

type KafkaPublisherSuite struct {
	suite.Suite
	broker   *containers.RedpandaContainer
	producer *kafka.Producer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.broker = containers.NewRedpandaContainer(s.T())

	var err error
	s.producer, err = kafka.NewProducer(context.Background(), config.KafkaConfig{
		Seeds:      []string{s.broker.Seed},
		AuditTopic: testTopic,
	})
	s.Require().NoError(err)
	s.Require().NotNil(s.producer)
	s.T().Cleanup(s.producer.Close)
}

func (s *KafkaPublisherSuite) TestEmitRoundTrip() {
	ctx := context.Background()

	publisher, err := audit.NewKafkaPublisher(s.producer)
	s.Require().NoError(err)

	event := ports.AuditEvent{
		CorrelationID: "corr-1",
		CustomerID:    "42",
		Period:        "2025-03",
		Completeness:  "complete",
		Tier:          "standard",
		SourceStatus:  map[string]string{"reputation": "success"},
		At:            time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(publisher.Emit(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Seed),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal([]byte("42"), records[0].Key, "events must be keyed by customer for per-customer ordering")

	var got ports.AuditEvent
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(event.CorrelationID, got.CorrelationID)
	s.Equal(event.Completeness, got.Completeness)
	s.Equal(event.SourceStatus, got.SourceStatus)
}

func (s *KafkaPublisherSuite) TestProducerIsDisabledWithoutSeeds() {
	producer, err := kafka.NewProducer(context.Background(), config.KafkaConfig{})
	s.NoError(err)
	s.Nil(producer)
}
