package commands

import (
	"context"
	"log/slog"
	"time"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/ports"
)

// MarkFailedCommandHandler moves a delivery into the terminal Failed state and
// fails the item alongside it in one unit of work.
type MarkFailedCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMarkFailedCommandHandler creates a handler for failure operations.
func NewMarkFailedCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MarkFailedCommandHandler {
	return MarkFailedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "mark_failed_handler"),
	}
}

// Handle processes the failure command.
// Legal only while the delivery is in Dispatched or InTransit.
func (h MarkFailedCommandHandler) Handle(ctx context.Context, cmd MarkFailedCommand) (*delivery.Delivery, error) {
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

	if err = trackedDelivery.Fail(cmd.Reason()); err != nil {
		return nil, err
	}

	trackedItem, err := itemRepo.Get(ctx, trackedDelivery.ItemID())
	if err != nil {
		return nil, err
	}

	if err = trackedItem.MarkFailed(); err != nil {
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

	publishItemStatusChanged(ctx, h.publisher, h.logger, trackedItem, time.Now().UTC(), nil)

	return trackedDelivery, nil
}
