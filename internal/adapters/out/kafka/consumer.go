package kafka

import (
	"context"
	"time"

	"cargotrack/internal/pkg/errs"

	segmentio "github.com/segmentio/kafka-go"
)

// Message is one event fetched from the bus. The topic identifies the event
// kind; the payload is the JSON envelope as published.
type Message struct {
	Topic   string
	Payload []byte
}

// Consumer reads events from a set of topics as part of a consumer group.
// Offsets commit after each read, giving at-least-once delivery; a consumer
// restarted mid-handling will see the same message again.
type Consumer struct {
	reader *segmentio.Reader
}

// NewConsumer creates a consumer-group reader over the given topics.
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if groupID == "" {
		return nil, errs.NewValueIsRequiredError("groupId")
	}
	if len(topics) == 0 {
		return nil, errs.NewValueIsRequiredError("topics")
	}

	reader := segmentio.NewReader(segmentio.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})

	return &Consumer{reader: reader}, nil
}

// Fetch blocks until the next message arrives or the context is cancelled.
func (c *Consumer) Fetch(ctx context.Context) (Message, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Topic:   msg.Topic,
		Payload: msg.Value,
	}, nil
}

// Close releases the reader and leaves the consumer group.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
