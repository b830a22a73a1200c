package commands

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents a rider picking an item up from its hub.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to record a pickup.
func NewMarkPickedUpCommand(deliveryID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return MarkPickedUpCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being picked up.
func (c MarkPickedUpCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}
