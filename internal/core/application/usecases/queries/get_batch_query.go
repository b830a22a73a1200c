package queries

import (
	"errors"
	"time"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New(
	"GetBatchQuery must be created via NewGetBatchQuery constructor",
)

// GetBatchQuery retrieves one batch by its identifier.
type GetBatchQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchQuery creates a query to retrieve a batch.
func NewGetBatchQuery(batchID kernel.UUID) (GetBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchQuery{}, err
	}

	return GetBatchQuery{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

// BatchID returns the identifier of the requested batch.
func (q GetBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}

// GetBatchQueryResponse represents one ingested batch for monitoring.
type GetBatchQueryResponse struct {
	ID          kernel.UUID
	BatchNumber string
	ClientID    string
	TotalItems  int
	UploadedBy  string
	Status      string
	Description string
	UploadedAt  time.Time
}
