package ports

import (
	"context"

	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates.
type BatchRepository interface {
	// Add persists a new batch aggregate.
	// A batch number collision is surfaced as a duplicate identifier error.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists changes to an existing batch aggregate.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetAllUncompleted retrieves every batch not yet in completed status.
	// Used by the reconciliation job to derive batch status from item statuses.
	GetAllUncompleted(ctx context.Context) ([]*batch.Batch, error)
}
