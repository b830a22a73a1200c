package item

import (
	"errors"
	"time"

	"cargotrack/internal/core/domain/model/kernel"

	"cargotrack/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through NewItem or RestoreItem. This ensures all items are properly validated.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// Item is the aggregate root for a single physical unit tracked from intake
// through delivery.
//
// Item follows these invariants:
//   - Tracking number and QR code are assigned once at creation and never change
//   - Status only advances forward through the legal transition table
//   - dispatchedAt and deliveredAt are set exactly once, the first time the
//     status enters Dispatched and Delivered respectively
//   - Items are never deleted (append-only audit requirement)
//
// Items are created by batch ingestion and mutated only by the delivery
// lifecycle operations.
type Item struct {
	id      kernel.UUID
	batchID kernel.UUID
	number  Number
	qrCode  string

	contact kernel.Contact
	address kernel.Address

	status Status

	createdAt    time.Time
	dispatchedAt *time.Time
	deliveredAt  *time.Time

	riderID              *string
	hubID                *string
	estimatedDeliveredAt *time.Time

	isConstructed bool
}

// NewItem creates a new Item in Received status with validation.
// The tracking number and QR code are fixed for the lifetime of the item.
func NewItem(
	id kernel.UUID,
	batchID kernel.UUID,
	number Number,
	qrCode string,
	contact kernel.Contact,
	address kernel.Address,
	createdAt time.Time,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		batchID.Validate(),
		number.Validate(),
		contact.Validate(),
		address.Validate(),
	); err != nil {
		return nil, err
	}
	if qrCode == "" {
		return nil, errs.NewValueIsRequiredError("qrCode")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Item{
		id:            id,
		batchID:       batchID,
		number:        number,
		qrCode:        qrCode,
		contact:       contact,
		address:       address,
		status:        Received,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an Item from persistence without re-running the
// creation rules. The stored status must still be a valid lifecycle state.
func RestoreItem(
	id kernel.UUID,
	batchID kernel.UUID,
	number Number,
	qrCode string,
	contact kernel.Contact,
	address kernel.Address,
	status Status,
	createdAt time.Time,
	dispatchedAt *time.Time,
	deliveredAt *time.Time,
	riderID *string,
	hubID *string,
	estimatedDeliveredAt *time.Time,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		batchID.Validate(),
		number.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:                   id,
		batchID:              batchID,
		number:               number,
		qrCode:               qrCode,
		contact:              contact,
		address:              address,
		status:               status,
		createdAt:            createdAt,
		dispatchedAt:         dispatchedAt,
		deliveredAt:          deliveredAt,
		riderID:              riderID,
		hubID:                hubID,
		estimatedDeliveredAt: estimatedDeliveredAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Item was constructed through NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// BatchID returns the identifier of the batch this item was ingested with.
func (i *Item) BatchID() kernel.UUID {
	return i.batchID
}

// Number returns the immutable tracking number.
func (i *Item) Number() Number {
	return i.number
}

// QRCode returns the immutable QR code payload.
func (i *Item) QRCode() string {
	return i.qrCode
}

// Contact returns the applicant contact details.
func (i *Item) Contact() kernel.Contact {
	return i.contact
}

// Address returns the delivery address.
func (i *Item) Address() kernel.Address {
	return i.address
}

// Status returns the current lifecycle status.
func (i *Item) Status() Status {
	return i.status
}

// CreatedAt returns the ingestion timestamp.
func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// DispatchedAt returns the first time the item entered Dispatched, or nil.
func (i *Item) DispatchedAt() *time.Time {
	return i.dispatchedAt
}

// DeliveredAt returns the first time the item entered Delivered, or nil.
func (i *Item) DeliveredAt() *time.Time {
	return i.deliveredAt
}

// RiderID returns the assigned rider's identifier, or nil if unassigned.
func (i *Item) RiderID() *string {
	return i.riderID
}

// HubID returns the hub the item was checked in at, or nil.
func (i *Item) HubID() *string {
	return i.hubID
}

// EstimatedDeliveredAt returns the estimated delivery time, or nil.
func (i *Item) EstimatedDeliveredAt() *time.Time {
	return i.estimatedDeliveredAt
}

// CheckIn moves the item Received -> Stored and records the receiving hub.
func (i *Item) CheckIn(hubID string) error {
	if hubID == "" {
		return errs.NewValueIsRequiredError("hubId")
	}

	next, err := i.status.TransitionTo(Stored)
	if err != nil {
		return err
	}

	i.status = next
	i.hubID = &hubID
	return nil
}

// Dispatch moves the item Stored -> Dispatched, assigns the rider, and stamps
// dispatchedAt the first time the item enters Dispatched. The optional
// estimated delivery time is recorded alongside.
func (i *Item) Dispatch(riderID string, at time.Time, estimatedAt *time.Time) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderId")
	}

	next, err := i.status.TransitionTo(Dispatched)
	if err != nil {
		return err
	}

	i.status = next
	i.riderID = &riderID
	if i.dispatchedAt == nil {
		stamp := at
		i.dispatchedAt = &stamp
	}
	i.estimatedDeliveredAt = estimatedAt
	return nil
}

// MarkInTransit moves the item Dispatched -> InTransit.
func (i *Item) MarkInTransit() error {
	next, err := i.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	i.status = next
	return nil
}

// MarkDelivered moves the item InTransit -> Delivered and stamps deliveredAt
// the first time the item enters Delivered.
func (i *Item) MarkDelivered(at time.Time) error {
	next, err := i.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	i.status = next
	if i.deliveredAt == nil {
		stamp := at
		i.deliveredAt = &stamp
	}
	return nil
}

// MarkFailed moves the item into the terminal Failed state.
// Only legal from Dispatched or InTransit.
func (i *Item) MarkFailed() error {
	next, err := i.status.TransitionTo(Failed)
	if err != nil {
		return err
	}

	i.status = next
	return nil
}
