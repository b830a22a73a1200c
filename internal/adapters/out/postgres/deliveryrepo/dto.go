// Package deliveryrepo implements the delivery repository over GORM. A
// partial unique index on item_id over non-terminal statuses enforces the
// one-active-delivery-per-item invariant at the storage layer, closing the
// race the application-level check leaves open.
package deliveryrepo

import (
	"time"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The proof-of-delivery columns are null until completion.
type DeliveryDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_deliveries_active_item,where:status IN (3\\,4)"`
	RiderID string    `gorm:"type:varchar(64);not null;index"`
	Status  int       `gorm:"type:int;not null;index"`

	AssignedAt  time.Time `gorm:"not null"`
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	Proof         ProofOfDeliveryDTO `gorm:"embedded;embeddedPrefix:pod_"`
	FailureReason string             `gorm:"type:varchar(512)"`
}

// TableName overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ProofOfDeliveryDTO represents the embedded proof columns. RecipientName
// doubles as the presence marker: a non-null value means a proof was captured.
type ProofOfDeliveryDTO struct {
	Signature     []byte     `gorm:"type:bytea"`
	Photo         []byte     `gorm:"type:bytea"`
	GPSLocation   *string    `gorm:"type:varchar(64)"`
	RecipientName *string    `gorm:"type:varchar(255)"`
	CapturedAt    *time.Time
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		ItemID:        aggregate.ItemID().Bytes(),
		RiderID:       aggregate.RiderID(),
		Status:        int(aggregate.Status()),
		AssignedAt:    aggregate.AssignedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		FailureReason: aggregate.FailureReason(),
	}

	if proof := aggregate.Proof(); proof != nil {
		gps := proof.GPSLocation()
		recipient := proof.RecipientName()
		captured := proof.CapturedAt()
		dto.Proof = ProofOfDeliveryDTO{
			Signature:     proof.Signature(),
			Photo:         proof.Photo(),
			GPSLocation:   &gps,
			RecipientName: &recipient,
			CapturedAt:    &captured,
		}
	}

	return dto
}

// toDomain converts a database DTO back to a delivery aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	var proof *delivery.ProofOfDelivery
	if dto.Proof.RecipientName != nil {
		restored, proofErr := delivery.NewProofOfDelivery(
			dto.Proof.Signature,
			dto.Proof.Photo,
			derefString(dto.Proof.GPSLocation),
			*dto.Proof.RecipientName,
			derefTime(dto.Proof.CapturedAt),
		)
		if proofErr != nil {
			return nil, proofErr
		}
		proof = &restored
	}

	return delivery.RestoreDelivery(
		id,
		itemID,
		dto.RiderID,
		item.Status(dto.Status),
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		proof,
		dto.FailureReason,
	)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
