package jobs

import (
	"context"
	"log/slog"

	"cargotrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BatchReconciliationJob periodically derives batch statuses from their
// items' statuses. Runs every minute; each run is a single forward-only
// derivation pass over all uncompleted batches.
type BatchReconciliationJob struct {
	handler commands.ReconcileBatchesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBatchReconciliationJob creates the reconciliation job.
func NewBatchReconciliationJob(
	handler commands.ReconcileBatchesCommandHandler,
	logger *slog.Logger,
) *BatchReconciliationJob {
	return &BatchReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "batch_reconciliation_job"),
	}
}

// Start schedules the reconciliation pass to run at the top of every minute.
func (j *BatchReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReconcileBatchesCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Batch reconciliation command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Batch reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *BatchReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Batch reconciliation job stopped")
}
