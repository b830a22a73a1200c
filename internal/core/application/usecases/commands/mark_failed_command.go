package commands

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var (
	ErrMarkFailedCommandIsNotConstructed = errors.New(
		"MarkFailedCommand must be created via NewMarkFailedCommand constructor",
	)
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// MarkFailedCommand represents a failed delivery attempt with its reason.
type MarkFailedCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewMarkFailedCommand creates a command to record a delivery failure.
func NewMarkFailedCommand(deliveryID kernel.UUID, reason string) (MarkFailedCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return MarkFailedCommand{}, err
	}
	if reason == "" {
		return MarkFailedCommand{}, ErrFailureReasonIsRequired
	}

	return MarkFailedCommand{
		deliveryID: deliveryID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkFailedCommand) Validate() error {
	return c.guard.Validate(ErrMarkFailedCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the failed delivery.
func (c MarkFailedCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns the recorded failure reason.
func (c MarkFailedCommand) Reason() string {
	return c.reason
}
