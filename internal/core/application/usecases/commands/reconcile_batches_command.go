package commands

import (
	"errors"

	"cargotrack/internal/pkg/guard"
)

var ErrReconcileBatchesCommandIsNotConstructed = errors.New(
	"ReconcileBatchesCommand must be created via NewReconcileBatchesCommand constructor",
)

// ReconcileBatchesCommand triggers a derivation pass over all uncompleted
// batches. It carries no parameters; the handler scans storage itself.
type ReconcileBatchesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewReconcileBatchesCommand creates a reconciliation command.
func NewReconcileBatchesCommand() (ReconcileBatchesCommand, error) {
	return ReconcileBatchesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileBatchesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileBatchesCommandIsNotConstructed)
}
