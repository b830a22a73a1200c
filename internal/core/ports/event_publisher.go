package ports

import "context"

// EventPublisher is the outbound half of the event bus port. Implementations
// marshal the event to a JSON envelope keyed by a random message identifier
// and publish it to the named topic with at-least-once semantics.
//
// Publish happens after commit and is best-effort from the publisher's point
// of view: callers log a failed publish and continue, they never roll back.
// The publisher is constructed once at process start and injected into every
// component that needs it; there is no ambient/global bus client.
type EventPublisher interface {
	// Publish sends one event to the topic. The event must be JSON-marshalable.
	Publish(ctx context.Context, topic string, event any) error

	// Close flushes and releases the underlying bus connection.
	Close() error
}
