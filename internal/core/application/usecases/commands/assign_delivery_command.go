package commands

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var (
	ErrAssignDeliveryCommandIsNotConstructed = errors.New(
		"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
	)
	ErrRiderIDIsRequired = errors.New("rider id is required")
)

// AssignDeliveryCommand represents a request to assign one item to one rider.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	riderID string

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign an item to a rider.
func NewAssignDeliveryCommand(itemID kernel.UUID, riderID string) (AssignDeliveryCommand, error) {
	assignCommand := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setItemID(itemID),
		assignCommand.setRiderID(riderID),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to assign.
func (c AssignDeliveryCommand) ItemID() kernel.UUID {
	return c.itemID
}

// RiderID returns the identifier of the rider to assign to.
func (c AssignDeliveryCommand) RiderID() string {
	return c.riderID
}

func (c *AssignDeliveryCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AssignDeliveryCommand) setRiderID(riderID string) error {
	if riderID == "" {
		return ErrRiderIDIsRequired
	}

	c.riderID = riderID
	return nil
}
