package commands

import (
	"context"
	"log/slog"
	"time"

	"cargotrack/internal/core/application/events"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/ports"
)

// publishBestEffort sends one event after a successful commit. Publishing is
// not transactional with the commit: a failure is logged at WARN and the
// operation still succeeds. A crash between commit and publish loses the
// event permanently; see the transactional-outbox note in DESIGN.md.
func publishBestEffort(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, topic string, event any) {
	if err := publisher.Publish(ctx, topic, event); err != nil {
		logger.WarnContext(ctx, "event publish failed after commit", "topic", topic, "error", err)
	}
}

// publishItemStatusChanged emits the item-status-changed event every
// successful lifecycle mutation produces.
func publishItemStatusChanged(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *item.Item,
	at time.Time,
	location *string,
) {
	publishBestEffort(ctx, publisher, logger, events.TopicItemStatusChanged, events.ItemStatusChanged{
		ItemID:    aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		RiderID:   aggregate.RiderID(),
		Timestamp: at,
		Location:  location,
	})
}
