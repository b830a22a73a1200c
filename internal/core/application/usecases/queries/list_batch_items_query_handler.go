package queries

import (
	"context"

	"cargotrack/internal/pkg/paging"

	"gorm.io/gorm"
)

// ListBatchItemsQueryHandler retrieves a batch's items from the database and
// pages them in memory through the whitelist-sorted paging utility.
type ListBatchItemsQueryHandler struct {
	db *gorm.DB
}

// NewListBatchItemsQueryHandler creates a handler for batch item listings.
func NewListBatchItemsQueryHandler(db *gorm.DB) ListBatchItemsQueryHandler {
	return ListBatchItemsQueryHandler{db: db}
}

// Handle executes the query. An empty batch yields an empty page, not an
// error; whether the batch exists is the getBatch surface's concern.
func (h ListBatchItemsQueryHandler) Handle(
	ctx context.Context,
	query ListBatchItemsQuery,
) (paging.Result[ItemView], error) {
	if err := query.Validate(); err != nil {
		return paging.Result[ItemView]{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+itemColumns+`
		FROM items
		WHERE batch_id = ?
		ORDER BY item_number
	`, query.BatchID().Bytes()).Rows()
	if err != nil {
		return paging.Result[ItemView]{}, err
	}
	defer rows.Close()

	views := make([]ItemView, 0)
	for rows.Next() {
		view, scanErr := scanItemRow(rows)
		if scanErr != nil {
			return paging.Result[ItemView]{}, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return paging.Result[ItemView]{}, err
	}

	return paging.Page(views, query.PageNumber(), query.PageSize(), query.SortSpec(), itemComparators()), nil
}
