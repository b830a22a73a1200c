package commands_test

import (
	"errors"
	"testing"
	"time"

	"cargotrack/internal/core/application/events"
	"cargotrack/internal/core/application/usecases/commands"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/ports"
	"cargotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testETAWindow = 48 * time.Hour

func testRider() ports.Rider {
	return ports.Rider{ID: "R001", Name: "John Rider", Phone: "+2348000000000", Email: "john@example.com", State: "Lagos"}
}

func TestAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storedItem := makeTestItem(t, item.Stored)
	cmd, err := commands.NewAssignDeliveryCommand(storedItem.ID(), "R001")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R001").Return(testRider(), nil).Once()

	itemRepo := new(MockItemRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		itemRepo.On("Get", ctx, storedItem.ID()).Return(storedItem, nil).Once(),
		deliveryRepo.On("GetActiveByItem", ctx, storedItem.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		itemRepo.On("Update", ctx, mock.AnythingOfType("*item.Item")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	mock.InOrder(
		publisher.On("Publish", ctx, events.TopicDeliveryAssigned, mock.AnythingOfType("events.DeliveryAssigned")).
			Return(nil).
			Once(),
		publisher.On("Publish", ctx, events.TopicItemStatusChanged, mock.AnythingOfType("events.ItemStatusChanged")).
			Return(nil).
			Once(),
	)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	newDelivery, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, newDelivery)
	assert.Equal(t, storedItem.ID(), newDelivery.ItemID())
	assert.Equal(t, "R001", newDelivery.RiderID())
	assert.Equal(t, item.Dispatched, newDelivery.Status())

	// The item is advanced in the same unit of work with the ETA stamped.
	assert.Equal(t, item.Dispatched, storedItem.Status())
	require.NotNil(t, storedItem.RiderID())
	assert.Equal(t, "R001", *storedItem.RiderID())
	require.NotNil(t, storedItem.EstimatedDeliveredAt())
	require.NotNil(t, storedItem.DispatchedAt())
	assert.Equal(t,
		storedItem.DispatchedAt().Add(testETAWindow),
		*storedItem.EstimatedDeliveredAt(),
	)

	riderCatalog.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_RiderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignDeliveryCommand(makeTestItem(t, item.Stored).ID(), "R999")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R999").Return(ports.Rider{}, errs.NewObjectNotFoundError("rider", "R999")).Once()

	factory := new(MockDeliveryUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRiderNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignDeliveryCommandHandler_Handle_RiderServiceUnavailable(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignDeliveryCommand(makeTestItem(t, item.Stored).ID(), "R001")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R001").
		Return(ports.Rider{}, errs.NewDependencyUnavailableErrorWithCause("rider service", errors.New("timeout"))).
		Once()

	factory := new(MockDeliveryUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDependencyUnavailable)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignDeliveryCommandHandler_Handle_DeliveryAlreadyActive(t *testing.T) {
	ctx := t.Context()
	storedItem := makeTestItem(t, item.Stored)
	activeDelivery := makeTestDelivery(t, item.InTransit)
	cmd, err := commands.NewAssignDeliveryCommand(storedItem.ID(), "R001")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R001").Return(testRider(), nil).Once()

	itemRepo := new(MockItemRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		itemRepo.On("Get", ctx, storedItem.ID()).Return(storedItem, nil).Once(),
		deliveryRepo.On("GetActiveByItem", ctx, storedItem.ID()).Return(activeDelivery, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDeliveryAlreadyActive)
	assert.Equal(t, item.Stored, storedItem.Status())
	publisher.AssertNotCalled(t, "Publish")
}

func TestAssignDeliveryCommandHandler_Handle_ItemNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignDeliveryCommand(makeTestItem(t, item.Stored).ID(), "R001")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R001").Return(testRider(), nil).Once()

	itemRepo := new(MockItemRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		itemRepo.On("Get", ctx, mock.Anything).Return(nil, errs.NewObjectNotFoundError("item", cmd.ItemID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignDeliveryCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	// Received item was never checked in at a hub; assignment must be rejected.
	receivedItem := makeTestItem(t, item.Received)
	cmd, err := commands.NewAssignDeliveryCommand(receivedItem.ID(), "R001")
	require.NoError(t, err)

	riderCatalog := new(MockRiderCatalog)
	riderCatalog.On("GetRider", ctx, "R001").Return(testRider(), nil).Once()

	itemRepo := new(MockItemRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		itemRepo.On("Get", ctx, receivedItem.ID()).Return(receivedItem, nil).Once(),
		deliveryRepo.On("GetActiveByItem", ctx, receivedItem.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, item.Received, receivedItem.Status())
	publisher.AssertNotCalled(t, "Publish")
}

func TestAssignDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignDeliveryCommand{} // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	riderCatalog := new(MockRiderCatalog)
	publisher := new(MockEventPublisher)

	handler := commands.NewAssignDeliveryCommandHandler(factory, riderCatalog, publisher, testETAWindow, testLogger())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignDeliveryCommandIsNotConstructed)
	riderCatalog.AssertNotCalled(t, "GetRider")
}
