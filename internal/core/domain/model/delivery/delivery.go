// Package delivery contains the Delivery aggregate: the assignment of one item
// to one rider through to completion or failure. Delivery status shares the
// item status vocabulary, restricted to Dispatched, InTransit, Delivered, and
// Failed; the corresponding item is advanced together with the delivery inside
// the same unit of work.
package delivery

import (
	"errors"
	"time"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")
)

// Delivery is the aggregate root linking one item to one rider.
//
// Invariants:
//   - At most one active (non-terminal) delivery exists per item id; the
//     repository enforces this with a partial unique index
//   - Status moves Dispatched -> InTransit -> Delivered only, with Failed
//     reachable from Dispatched or InTransit
//   - ProofOfDelivery exists if and only if status is Delivered
type Delivery struct {
	id      kernel.UUID
	itemID  kernel.UUID
	riderID string

	status item.Status

	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	proof         *ProofOfDelivery
	failureReason string

	isConstructed bool
}

// NewDelivery creates a Delivery in Dispatched status, stamped with the
// assignment time.
func NewDelivery(id, itemID kernel.UUID, riderID string, assignedAt time.Time) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		itemID.Validate(),
	); err != nil {
		return nil, err
	}
	if riderID == "" {
		return nil, errs.NewValueIsRequiredError("riderId")
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &Delivery{
		id:            id,
		itemID:        itemID,
		riderID:       riderID,
		status:        item.Dispatched,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
func RestoreDelivery(
	id, itemID kernel.UUID,
	riderID string,
	status item.Status,
	assignedAt time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	proof *ProofOfDelivery,
	failureReason string,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		itemID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		itemID:        itemID,
		riderID:       riderID,
		status:        status,
		assignedAt:    assignedAt,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		proof:         proof,
		failureReason: failureReason,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery was constructed through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ItemID returns the identifier of the item being delivered.
func (d *Delivery) ItemID() kernel.UUID {
	return d.itemID
}

// RiderID returns the assigned rider's identifier.
func (d *Delivery) RiderID() string {
	return d.riderID
}

// Status returns the current delivery status.
func (d *Delivery) Status() item.Status {
	return d.status
}

// AssignedAt returns the assignment timestamp.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// PickedUpAt returns the pickup timestamp, or nil.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// DeliveredAt returns the completion timestamp, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// Proof returns the proof of delivery, or nil unless the delivery completed.
func (d *Delivery) Proof() *ProofOfDelivery {
	return d.proof
}

// FailureReason returns the recorded failure reason, empty unless Failed.
func (d *Delivery) FailureReason() string {
	return d.failureReason
}

// IsActive reports whether the delivery has not yet reached a terminal state.
func (d *Delivery) IsActive() bool {
	return !d.status.IsTerminal()
}

// PickUp moves the delivery Dispatched -> InTransit and stamps pickedUpAt.
func (d *Delivery) PickUp(at time.Time) error {
	if d.status != item.Dispatched {
		return errs.NewInvalidTransitionError("delivery", d.status.String(), item.InTransit.String())
	}

	d.status = item.InTransit
	stamp := at
	d.pickedUpAt = &stamp
	return nil
}

// Complete moves the delivery InTransit -> Delivered, stamps deliveredAt, and
// attaches the proof of delivery. The proof must already be validated.
func (d *Delivery) Complete(at time.Time, proof ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}
	if d.status != item.InTransit {
		return errs.NewInvalidTransitionError("delivery", d.status.String(), item.Delivered.String())
	}

	d.status = item.Delivered
	stamp := at
	d.deliveredAt = &stamp
	d.proof = &proof
	return nil
}

// Fail moves the delivery into the terminal Failed state with a required
// reason. Only legal from Dispatched or InTransit.
func (d *Delivery) Fail(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failureReason")
	}
	if d.status != item.Dispatched && d.status != item.InTransit {
		return errs.NewInvalidTransitionError("delivery", d.status.String(), item.Failed.String())
	}

	d.status = item.Failed
	d.failureReason = reason
	return nil
}
