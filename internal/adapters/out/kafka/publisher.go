// Package kafka implements the event bus port over segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"cargotrack/internal/core/ports"
	"cargotrack/internal/pkg/errs"

	"github.com/google/uuid"
	segmentio "github.com/segmentio/kafka-go"
)

// Publisher publishes JSON-encoded events with at-least-once semantics.
// Message keys are random, so consumers must not rely on partition ordering.
type Publisher struct {
	writer *segmentio.Writer
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher connected to the given brokers.
func NewPublisher(brokers []string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}

	return &Publisher{
		writer: &segmentio.Writer{
			Addr:         segmentio.TCP(brokers...),
			RequiredAcks: segmentio.RequireAll,
			Balancer:     &segmentio.Hash{},
		},
	}, nil
}

// Publish marshals the event and writes it to the topic. A broker failure is
// surfaced as a dependency unavailable error so callers can log and move on.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("event", err)
	}

	err = p.writer.WriteMessages(ctx, segmentio.Message{
		Topic: topic,
		Key:   []byte(uuid.NewString()),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return errs.NewDependencyUnavailableErrorWithCause("kafka", err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
