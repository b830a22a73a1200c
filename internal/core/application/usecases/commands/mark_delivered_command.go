package commands

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"
	"cargotrack/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// ProofOfDeliveryInput carries the evidence captured by the rider at handover.
// GPS location and recipient name are required; signature and photo are
// optional blobs.
type ProofOfDeliveryInput struct {
	Signature     []byte
	Photo         []byte
	GPSLocation   string
	RecipientName string
}

// MarkDeliveredCommand represents the completion of a delivery with proof.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	proof      ProofOfDeliveryInput

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to complete a delivery.
// Fails with a validation error when the proof's GPS location or recipient
// name is empty, before any persistence is touched.
func NewMarkDeliveredCommand(deliveryID kernel.UUID, proof ProofOfDeliveryInput) (MarkDeliveredCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}
	if proof.GPSLocation == "" {
		return MarkDeliveredCommand{}, errs.NewValueIsRequiredError("gpsLocation")
	}
	if proof.RecipientName == "" {
		return MarkDeliveredCommand{}, errs.NewValueIsRequiredError("recipientName")
	}

	return MarkDeliveredCommand{
		deliveryID: deliveryID,
		proof:      proof,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being completed.
func (c MarkDeliveredCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Proof returns the captured proof-of-delivery input.
func (c MarkDeliveredCommand) Proof() ProofOfDeliveryInput {
	return c.proof
}
