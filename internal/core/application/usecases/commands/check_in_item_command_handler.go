package commands

import (
	"context"
	"log/slog"
	"time"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/ports"
)

// CheckInItemCommandHandler moves an item from Received to Stored when it is
// scanned at a hub.
type CheckInItemCommandHandler struct {
	uowFactory ItemUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCheckInItemCommandHandler creates a handler for hub check-in operations.
func NewCheckInItemCommandHandler(
	uowFactory ItemUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CheckInItemCommandHandler {
	return CheckInItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "check_in_item_handler"),
	}
}

// Handle processes the check-in command.
// Fails with an object-not-found error when the item is absent and an invalid
// transition error unless the item is exactly in Received.
func (h CheckInItemCommandHandler) Handle(ctx context.Context, cmd CheckInItemCommand) (*item.Item, error) {
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

	itemRepo := uow.ItemRepository()

	trackedItem, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = trackedItem.CheckIn(cmd.HubID()); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, trackedItem); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishItemStatusChanged(ctx, h.publisher, h.logger, trackedItem, time.Now().UTC(), nil)

	return trackedItem, nil
}
