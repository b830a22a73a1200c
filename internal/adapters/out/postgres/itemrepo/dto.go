// Package itemrepo implements the item repository over GORM, handling the
// conversion between item aggregates and their database representation.
package itemrepo

import (
	"time"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting item aggregates.
// Tracking number and QR code carry unique indexes; a collision on either is
// surfaced as a duplicate identifier error.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemNumber     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_items_item_number"`
	QRCode         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_qr_code"`
	ApplicantName  string    `gorm:"type:varchar(255);not null"`
	ApplicantPhone string    `gorm:"type:varchar(32);not null"`
	ApplicantEmail string    `gorm:"type:varchar(255);not null"`
	Address        string    `gorm:"type:varchar(512);not null"`
	State          string    `gorm:"type:varchar(64);not null;index"`
	LGA            string    `gorm:"type:varchar(64);not null"`
	Status         int       `gorm:"type:int;not null;index"`
	RiderID        *string   `gorm:"type:varchar(64)"`
	HubID          *string   `gorm:"type:varchar(64)"`
	CreatedAt      time.Time `gorm:"not null"`
	DispatchedAt   *time.Time
	DeliveredAt    *time.Time

	EstimatedDeliveredAt *time.Time
}

// TableName overrides GORM's default naming convention to use "items".
func (ItemDTO) TableName() string {
	return "items"
}

// fromDomain converts an item aggregate to its database representation.
func fromDomain(aggregate *item.Item) ItemDTO {
	return ItemDTO{
		ID:                   aggregate.ID().Bytes(),
		BatchID:              aggregate.BatchID().Bytes(),
		ItemNumber:           aggregate.Number().String(),
		QRCode:               aggregate.QRCode(),
		ApplicantName:        aggregate.Contact().Name(),
		ApplicantPhone:       aggregate.Contact().Phone(),
		ApplicantEmail:       aggregate.Contact().Email(),
		Address:              aggregate.Address().Street(),
		State:                aggregate.Address().State(),
		LGA:                  aggregate.Address().LGA(),
		Status:               int(aggregate.Status()),
		RiderID:              aggregate.RiderID(),
		HubID:                aggregate.HubID(),
		CreatedAt:            aggregate.CreatedAt(),
		DispatchedAt:         aggregate.DispatchedAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		EstimatedDeliveredAt: aggregate.EstimatedDeliveredAt(),
	}
}

// toDomain converts a database DTO back to an item aggregate via RestoreItem.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	number, err := item.NewNumber(dto.ItemNumber)
	if err != nil {
		return nil, err
	}

	contact, err := kernel.NewContact(dto.ApplicantName, dto.ApplicantPhone, dto.ApplicantEmail)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address, dto.State, dto.LGA)
	if err != nil {
		return nil, err
	}

	return item.RestoreItem(
		id,
		batchID,
		number,
		dto.QRCode,
		contact,
		address,
		item.Status(dto.Status),
		dto.CreatedAt,
		dto.DispatchedAt,
		dto.DeliveredAt,
		dto.RiderID,
		dto.HubID,
		dto.EstimatedDeliveredAt,
	)
}
