package commands

import (
	"context"
	"log/slog"

	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/item"
)

// ReconcileBatchesCommandHandler derives batch statuses from the statuses of
// the items ingested with each batch. Batch status only ever moves forward;
// a derivation that would move it backwards is a no-op for that batch.
type ReconcileBatchesCommandHandler struct {
	uowFactory BatchUoWFactory
	logger     *slog.Logger
}

// NewReconcileBatchesCommandHandler creates a handler for batch reconciliation.
func NewReconcileBatchesCommandHandler(
	uowFactory BatchUoWFactory,
	logger *slog.Logger,
) ReconcileBatchesCommandHandler {
	return ReconcileBatchesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_batches_handler"),
	}
}

// Handle scans every uncompleted batch and advances its status where the item
// statuses warrant it. All advances commit as one transaction.
func (h ReconcileBatchesCommandHandler) Handle(ctx context.Context, cmd ReconcileBatchesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	itemRepo := uow.ItemRepository()

	batches, err := batchRepo.GetAllUncompleted(ctx)
	if err != nil {
		return err
	}

	advanced := 0
	for _, trackedBatch := range batches {
		items, err := itemRepo.GetAllByBatch(ctx, trackedBatch.ID())
		if err != nil {
			return err
		}

		target := deriveBatchStatus(items)
		if !trackedBatch.Status().CanAdvanceTo(target) {
			continue
		}

		if err = trackedBatch.Advance(target); err != nil {
			return err
		}
		if err = batchRepo.Update(ctx, trackedBatch); err != nil {
			return err
		}
		advanced++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if advanced > 0 {
		h.logger.InfoContext(ctx, "batches reconciled", "scanned", len(batches), "advanced", advanced)
	}

	return nil
}

// deriveBatchStatus folds item statuses into the most advanced batch status
// they justify: all terminal means completed, any rider handoff means
// dispatched, all checked in means ready, otherwise processing.
func deriveBatchStatus(items []*item.Item) batch.Status {
	if len(items) == 0 {
		return batch.Processing
	}

	allTerminal := true
	anyDispatched := false
	anyReceived := false
	for _, it := range items {
		status := it.Status()
		if !status.IsTerminal() {
			allTerminal = false
		}
		if status >= item.Dispatched {
			anyDispatched = true
		}
		if status == item.Received {
			anyReceived = true
		}
	}

	switch {
	case allTerminal:
		return batch.Completed
	case anyDispatched:
		return batch.Dispatched
	case !anyReceived:
		return batch.Ready
	default:
		return batch.Processing
	}
}
