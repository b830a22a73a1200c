package commands

import (
	"context"
	"log/slog"
	"time"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/ports"
)

// MarkDeliveredCommandHandler completes a delivery with proof of delivery and
// advances the item to Delivered in the same unit of work.
type MarkDeliveredCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMarkDeliveredCommandHandler creates a handler for completion operations.
func NewMarkDeliveredCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "mark_delivered_handler"),
	}
}

// Handle processes the completion command.
// Fails with an object-not-found error when the delivery is absent and an
// invalid transition error unless the delivery is exactly in InTransit. The
// proof of delivery is stamped with its own capture timestamp.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	itemRepo := uow.ItemRepository()

	trackedDelivery, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	input := cmd.Proof()

	proof, err := delivery.NewProofOfDelivery(input.Signature, input.Photo, input.GPSLocation, input.RecipientName, now)
	if err != nil {
		return nil, err
	}

	if err = trackedDelivery.Complete(now, proof); err != nil {
		return nil, err
	}

	trackedItem, err := itemRepo.Get(ctx, trackedDelivery.ItemID())
	if err != nil {
		return nil, err
	}

	if err = trackedItem.MarkDelivered(now); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, trackedDelivery); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, trackedItem); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	gps := proof.GPSLocation()
	publishItemStatusChanged(ctx, h.publisher, h.logger, trackedItem, now, &gps)

	return trackedDelivery, nil
}
