package queries

import (
	"context"
	"database/sql"
	"errors"

	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchQueryHandler retrieves a single batch from the database.
type GetBatchQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchQueryHandler creates a handler for batch lookups.
func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no batch
// exists with the requested identifier.
func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (GetBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			batch_number,
			client_id,
			total_items,
			uploaded_by,
			status,
			description,
			uploaded_at
		FROM batches
		WHERE id = ?
	`, query.BatchID().Bytes()).Row()

	var resp GetBatchQueryResponse
	var id uuid.UUID
	var status int

	err := row.Scan(
		&id,
		&resp.BatchNumber,
		&resp.ClientID,
		&resp.TotalItems,
		&resp.UploadedBy,
		&status,
		&resp.Description,
		&resp.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetBatchQueryResponse{}, errs.NewObjectNotFoundError("batch", query.BatchID().String())
	}
	if err != nil {
		return GetBatchQueryResponse{}, err
	}

	batchID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetBatchQueryResponse{}, err
	}
	resp.ID = batchID
	resp.Status = batch.Status(status).String()

	return resp, nil
}
