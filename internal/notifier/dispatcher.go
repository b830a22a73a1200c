// Package notifier hosts the notification dispatcher: a long-running
// sequential consumer over the tracking core's event topics that fans
// notifications out to SMS, email, and push channels.
//
// Delivery is at-least-once and the dispatcher performs no deduplication, so
// a replayed event produces a second notification attempt. Failures never
// stop the loop: malformed payloads and failed lookups are logged and
// skipped, channel errors are isolated per channel.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cargotrack/internal/core/application/events"
	"cargotrack/internal/core/ports"
	"cargotrack/internal/pkg/errs"
)

// Consumer is the inbound half of the event bus port, yielding one message
// at a time. Fetch blocks until a message arrives or the context ends.
type Consumer interface {
	Fetch(ctx context.Context) (topic string, payload []byte, err error)
	Close() error
}

// ItemContact is the applicant contact slice of an item, resolved through
// the tracking core's synchronous lookup surface.
type ItemContact struct {
	ItemNumber     string
	ApplicantName  string
	ApplicantPhone string
	ApplicantEmail string
}

// ItemLookup resolves an item's applicant contact details by item identifier.
type ItemLookup interface {
	GetItem(ctx context.Context, itemID string) (ItemContact, error)
}

// Dispatcher owns the consumer loop. It is started once per process and
// stopped by cancelling the context passed to Run; the in-flight message is
// always finished before the loop exits.
type Dispatcher struct {
	consumer Consumer
	items    ItemLookup
	riders   ports.RiderCatalog
	sms      Channel
	email    Channel
	push     Channel
	opsEmail string
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given consumer and channels.
// opsEmail is the fixed operations contact notified on batch uploads.
func NewDispatcher(
	consumer Consumer,
	items ItemLookup,
	riders ports.RiderCatalog,
	sms Channel,
	email Channel,
	push Channel,
	opsEmail string,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if consumer == nil {
		return nil, errs.NewValueIsRequiredError("consumer")
	}
	if items == nil {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if riders == nil {
		return nil, errs.NewValueIsRequiredError("riders")
	}
	if sms == nil || email == nil || push == nil {
		return nil, errs.NewValueIsRequiredError("channels")
	}
	if opsEmail == "" {
		return nil, errs.NewValueIsRequiredError("opsEmail")
	}

	return &Dispatcher{
		consumer: consumer,
		items:    items,
		riders:   riders,
		sms:      sms,
		email:    email,
		push:     push,
		opsEmail: opsEmail,
		logger:   logger.With("component", "notification_dispatcher"),
	}, nil
}

// Run pulls and handles messages sequentially until the context is cancelled.
// Cancellation stops pulling; the message already fetched is handled to
// completion before Run returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "dispatcher started")

	for {
		topic, payload, err := d.consumer.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				d.logger.InfoContext(ctx, "dispatcher stopped")
				return nil
			}
			d.logger.ErrorContext(ctx, "fetch failed", "error", err)
			continue
		}

		// The in-flight message survives shutdown.
		d.Handle(context.WithoutCancel(ctx), topic, payload)
	}
}

// Handle routes one message by topic. Unknown topics and payloads that fail
// to deserialize are logged and skipped; nothing is retried or dead-lettered.
func (d *Dispatcher) Handle(ctx context.Context, topic string, payload []byte) {
	switch topic {
	case events.TopicItemStatusChanged:
		var event events.ItemStatusChanged
		if err := json.Unmarshal(payload, &event); err != nil {
			d.logger.ErrorContext(ctx, "malformed payload skipped", "topic", topic, "error", err)
			return
		}
		d.handleItemStatusChanged(ctx, event)

	case events.TopicDeliveryAssigned:
		var event events.DeliveryAssigned
		if err := json.Unmarshal(payload, &event); err != nil {
			d.logger.ErrorContext(ctx, "malformed payload skipped", "topic", topic, "error", err)
			return
		}
		d.handleDeliveryAssigned(ctx, event)

	case events.TopicBatchUploaded:
		var event events.BatchUploaded
		if err := json.Unmarshal(payload, &event); err != nil {
			d.logger.ErrorContext(ctx, "malformed payload skipped", "topic", topic, "error", err)
			return
		}
		d.handleBatchUploaded(ctx, event)

	default:
		d.logger.WarnContext(ctx, "unknown topic skipped", "topic", topic)
	}
}

// handleItemStatusChanged notifies the applicant over every channel their
// contact details allow.
func (d *Dispatcher) handleItemStatusChanged(ctx context.Context, event events.ItemStatusChanged) {
	contact, err := d.items.GetItem(ctx, event.ItemID)
	if err != nil {
		d.logger.ErrorContext(ctx, "item lookup failed, notification skipped",
			"itemId", event.ItemID, "error", err)
		return
	}

	message := fmt.Sprintf("Your item %s is now %s", contact.ItemNumber, event.Status)

	if contact.ApplicantPhone != "" {
		d.send(ctx, d.sms, contact.ApplicantPhone, message)
	}
	if contact.ApplicantEmail != "" {
		d.send(ctx, d.email, contact.ApplicantEmail, message)
	}
}

// handleDeliveryAssigned notifies the rider about the new assignment.
func (d *Dispatcher) handleDeliveryAssigned(ctx context.Context, event events.DeliveryAssigned) {
	rider, err := d.riders.GetRider(ctx, event.RiderID)
	if err != nil {
		d.logger.ErrorContext(ctx, "rider lookup failed, notification skipped",
			"riderId", event.RiderID, "error", err)
		return
	}

	message := fmt.Sprintf("New delivery %s assigned to you for item %s", event.DeliveryID, event.ItemID)

	d.send(ctx, d.push, rider.ID, message)
	if rider.Phone != "" {
		d.send(ctx, d.sms, rider.Phone, message)
	}
}

// handleBatchUploaded notifies the fixed operations contact.
func (d *Dispatcher) handleBatchUploaded(ctx context.Context, event events.BatchUploaded) {
	message := fmt.Sprintf("Batch %s uploaded with %d items", event.BatchID, event.TotalItems)
	d.send(ctx, d.email, d.opsEmail, message)
}

// send isolates a channel failure: it is logged and does not affect the
// other channels or the next message.
func (d *Dispatcher) send(ctx context.Context, channel Channel, recipient string, message string) {
	if err := channel.Send(ctx, recipient, message); err != nil {
		d.logger.ErrorContext(ctx, "notification failed",
			"channel", channel.Name(), "recipient", recipient, "error", err)
	}
}
