package commands

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var (
	ErrCheckInItemCommandIsNotConstructed = errors.New(
		"CheckInItemCommand must be created via NewCheckInItemCommand constructor",
	)
	ErrHubIDIsRequired = errors.New("hub id is required")
)

// CheckInItemCommand represents the scan of an item arriving at a hub.
type CheckInItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	hubID  string

	guard guard.ConstructorGuard
}

// NewCheckInItemCommand creates a command to check an item in at a hub.
func NewCheckInItemCommand(itemID kernel.UUID, hubID string) (CheckInItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return CheckInItemCommand{}, err
	}
	if hubID == "" {
		return CheckInItemCommand{}, ErrHubIDIsRequired
	}

	return CheckInItemCommand{
		itemID: itemID,
		hubID:  hubID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckInItemCommand) Validate() error {
	return c.guard.Validate(ErrCheckInItemCommandIsNotConstructed)
}

// ItemID returns the identifier of the item being checked in.
func (c CheckInItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// HubID returns the identifier of the receiving hub.
func (c CheckInItemCommand) HubID() string {
	return c.hubID
}
