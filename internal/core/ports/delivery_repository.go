package ports

import (
	"context"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByItem retrieves the single active (non-terminal) delivery for
	// an item, or an object-not-found error if none exists. At most one active
	// delivery may exist per item.
	GetActiveByItem(ctx context.Context, itemID kernel.UUID) (*delivery.Delivery, error)
}
