package ports

import (
	"context"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for item aggregates.
// Items are append-only from a lifecycle perspective: they are created once by
// batch ingestion, mutated by the delivery lifecycle, and never deleted.
type ItemRepository interface {
	// Add persists a new item aggregate.
	// A tracking number or QR code collision is surfaced as a duplicate
	// identifier error, never silently retried.
	Add(ctx context.Context, aggregate *item.Item) error

	// AddAll persists a set of new item aggregates within the ambient
	// transaction. Used by batch ingestion, which commits the batch row and
	// all item rows as one unit.
	AddAll(ctx context.Context, aggregates []*item.Item) error

	// Update persists changes to an existing item aggregate.
	Update(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetAllByBatch retrieves every item ingested with the given batch.
	GetAllByBatch(ctx context.Context, batchID kernel.UUID) ([]*item.Item, error)
}
