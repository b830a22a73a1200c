package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cargotrack/internal/core/application/events"
	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/core/ports"
	"cargotrack/internal/pkg/errs"
)

var (
	// ErrRiderNotFound is returned when the rider collaborator does not know
	// the requested rider id.
	ErrRiderNotFound = errors.New("rider not found")

	// ErrDeliveryAlreadyActive is returned when the item already has a
	// non-terminal delivery. At most one active delivery exists per item.
	ErrDeliveryAlreadyActive = errors.New("item already has an active delivery")
)

// AssignDeliveryCommandHandler creates a Delivery for an item and advances the
// item to Dispatched in the same unit of work. The rider is resolved through
// the external rider collaborator before anything is written.
//
// After commit it publishes delivery-assigned plus the item-status-changed
// event every successful mutation produces.
type AssignDeliveryCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	riderCatalog ports.RiderCatalog
	publisher    ports.EventPublisher
	etaWindow    time.Duration
	logger       *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
// etaWindow is added to the assignment time to estimate delivery.
func NewAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	riderCatalog ports.RiderCatalog,
	publisher ports.EventPublisher,
	etaWindow time.Duration,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory:   uowFactory,
		riderCatalog: riderCatalog,
		publisher:    publisher,
		etaWindow:    etaWindow,
		logger:       logger.With("component", "assign_delivery_handler"),
	}
}

// Handle processes the assignment command.
// Returns ErrRiderNotFound when the rider does not exist, a dependency
// unavailable error when the rider lookup fails or times out, and
// ErrDeliveryAlreadyActive when the item already has a live delivery.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rider, err := h.riderCatalog.GetRider(ctx, cmd.RiderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrRiderNotFound
	}
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()
	deliveryRepo := uow.DeliveryRepository()

	trackedItem, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	_, err = deliveryRepo.GetActiveByItem(ctx, cmd.ItemID())
	if err == nil {
		return nil, ErrDeliveryAlreadyActive
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	eta := now.Add(h.etaWindow)

	newDelivery, err := delivery.NewDelivery(kernel.NewUUID(), trackedItem.ID(), rider.ID, now)
	if err != nil {
		return nil, err
	}

	if err = trackedItem.Dispatch(rider.ID, now, &eta); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, newDelivery); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, trackedItem); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishBestEffort(ctx, h.publisher, h.logger, events.TopicDeliveryAssigned, events.DeliveryAssigned{
		DeliveryID: newDelivery.ID().String(),
		ItemID:     newDelivery.ItemID().String(),
		RiderID:    newDelivery.RiderID(),
		AssignedAt: newDelivery.AssignedAt(),
	})
	publishItemStatusChanged(ctx, h.publisher, h.logger, trackedItem, now, nil)

	return newDelivery, nil
}
