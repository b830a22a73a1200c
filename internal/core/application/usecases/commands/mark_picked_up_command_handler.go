package commands

import (
	"context"
	"log/slog"
	"time"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/ports"
)

// MarkPickedUpCommandHandler moves a delivery from Dispatched to InTransit and
// advances the item alongside it in one unit of work.
type MarkPickedUpCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMarkPickedUpCommandHandler creates a handler for pickup operations.
func NewMarkPickedUpCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "mark_picked_up_handler"),
	}
}

// Handle processes the pickup command.
// Fails with an object-not-found error when the delivery is absent and an
// invalid transition error unless the delivery is exactly in Dispatched.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) (*delivery.Delivery, error) {
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
	if err = trackedDelivery.PickUp(now); err != nil {
		return nil, err
	}

	trackedItem, err := itemRepo.Get(ctx, trackedDelivery.ItemID())
	if err != nil {
		return nil, err
	}

	if err = trackedItem.MarkInTransit(); err != nil {
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

	publishItemStatusChanged(ctx, h.publisher, h.logger, trackedItem, now, nil)

	return trackedDelivery, nil
}
