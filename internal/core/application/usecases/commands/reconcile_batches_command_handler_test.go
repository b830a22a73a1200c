package commands_test

import (
	"testing"
	"time"

	"cargotrack/internal/core/application/usecases/commands"
	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeTestBatch(t *testing.T, status batch.Status, totalItems int) *batch.Batch {
	t.Helper()

	number, err := batch.NewNumber("BATCH-20240131-0042")
	require.NoError(t, err)

	testBatch, err := batch.RestoreBatch(
		kernel.NewUUID(), number, "client-1",
		totalItems, "uploader-1", status, "", time.Now().UTC(),
	)
	require.NoError(t, err)
	return testBatch
}

func reconcileHarness(uow *MockBatchUoW) (*MockBatchUoWFactory, commands.ReconcileBatchesCommandHandler) {
	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, commands.NewReconcileBatchesCommandHandler(factory, testLogger())
}

func TestReconcileBatchesCommandHandler_Handle_AdvancesToReady(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileBatchesCommand()
	require.NoError(t, err)

	processingBatch := makeTestBatch(t, batch.Processing, 2)
	items := []*item.Item{
		makeTestItem(t, item.Stored),
		makeTestItem(t, item.Stored),
	}

	batchRepo := new(MockBatchRepository)
	itemRepo := new(MockItemRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		batchRepo.On("GetAllUncompleted", ctx).Return([]*batch.Batch{processingBatch}, nil).Once(),
		itemRepo.On("GetAllByBatch", ctx, processingBatch.ID()).Return(items, nil).Once(),
		batchRepo.On("Update", ctx, mock.AnythingOfType("*batch.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, handler := reconcileHarness(uow)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Ready, processingBatch.Status())
	batchRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcileBatchesCommandHandler_Handle_AdvancesToDispatched(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileBatchesCommand()
	require.NoError(t, err)

	readyBatch := makeTestBatch(t, batch.Ready, 2)
	items := []*item.Item{
		makeTestItem(t, item.Stored),
		makeTestItem(t, item.InTransit),
	}

	batchRepo := new(MockBatchRepository)
	itemRepo := new(MockItemRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		batchRepo.On("GetAllUncompleted", ctx).Return([]*batch.Batch{readyBatch}, nil).Once(),
		itemRepo.On("GetAllByBatch", ctx, readyBatch.ID()).Return(items, nil).Once(),
		batchRepo.On("Update", ctx, mock.AnythingOfType("*batch.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, handler := reconcileHarness(uow)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Dispatched, readyBatch.Status())
}

func TestReconcileBatchesCommandHandler_Handle_CompletesWhenAllTerminal(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileBatchesCommand()
	require.NoError(t, err)

	dispatchedBatch := makeTestBatch(t, batch.Dispatched, 2)
	items := []*item.Item{
		makeTestItem(t, item.Delivered),
		makeTestItem(t, item.Failed),
	}

	batchRepo := new(MockBatchRepository)
	itemRepo := new(MockItemRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		batchRepo.On("GetAllUncompleted", ctx).Return([]*batch.Batch{dispatchedBatch}, nil).Once(),
		itemRepo.On("GetAllByBatch", ctx, dispatchedBatch.ID()).Return(items, nil).Once(),
		batchRepo.On("Update", ctx, mock.AnythingOfType("*batch.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, handler := reconcileHarness(uow)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Completed, dispatchedBatch.Status())

	// The recorded item count never changes during reconciliation.
	assert.Equal(t, 2, dispatchedBatch.TotalItems())
}

func TestReconcileBatchesCommandHandler_Handle_NeverMovesBackwards(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileBatchesCommand()
	require.NoError(t, err)

	// Items say Ready but the batch already advanced to Dispatched.
	dispatchedBatch := makeTestBatch(t, batch.Dispatched, 1)
	items := []*item.Item{makeTestItem(t, item.Stored)}

	batchRepo := new(MockBatchRepository)
	itemRepo := new(MockItemRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		batchRepo.On("GetAllUncompleted", ctx).Return([]*batch.Batch{dispatchedBatch}, nil).Once(),
		itemRepo.On("GetAllByBatch", ctx, dispatchedBatch.ID()).Return(items, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, handler := reconcileHarness(uow)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Dispatched, dispatchedBatch.Status())
	batchRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReconcileBatchesCommandHandler_Handle_MixedStatusesStayProcessing(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileBatchesCommand()
	require.NoError(t, err)

	processingBatch := makeTestBatch(t, batch.Processing, 2)
	items := []*item.Item{
		makeTestItem(t, item.Received),
		makeTestItem(t, item.Stored),
	}

	batchRepo := new(MockBatchRepository)
	itemRepo := new(MockItemRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		batchRepo.On("GetAllUncompleted", ctx).Return([]*batch.Batch{processingBatch}, nil).Once(),
		itemRepo.On("GetAllByBatch", ctx, processingBatch.ID()).Return(items, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, handler := reconcileHarness(uow)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Processing, processingBatch.Status())
}
