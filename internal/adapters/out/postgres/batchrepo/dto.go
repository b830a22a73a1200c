// Package batchrepo implements the batch repository over GORM.
package batchrepo

import (
	"time"

	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BatchDTO represents the database structure for persisting batch aggregates.
type BatchDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchNumber string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_batches_batch_number"`
	ClientID    string    `gorm:"type:varchar(64);not null;index"`
	TotalItems  int       `gorm:"type:int;not null"`
	UploadedBy  string    `gorm:"type:varchar(64);not null"`
	Status      int       `gorm:"type:int;not null;index"`
	Description string    `gorm:"type:varchar(512)"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "batches".
func (BatchDTO) TableName() string {
	return "batches"
}

// fromDomain converts a batch aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) BatchDTO {
	return BatchDTO{
		ID:          aggregate.ID().Bytes(),
		BatchNumber: aggregate.Number().String(),
		ClientID:    aggregate.ClientID(),
		TotalItems:  aggregate.TotalItems(),
		UploadedBy:  aggregate.UploadedBy(),
		Status:      int(aggregate.Status()),
		Description: aggregate.Description(),
		UploadedAt:  aggregate.UploadedAt(),
	}
}

// toDomain converts a database DTO back to a batch aggregate via RestoreBatch.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := batch.NewNumber(dto.BatchNumber)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(
		id,
		number,
		dto.ClientID,
		dto.TotalItems,
		dto.UploadedBy,
		batch.Status(dto.Status),
		dto.Description,
		dto.UploadedAt,
	)
}
