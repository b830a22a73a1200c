package queries

import (
	"context"

	"cargotrack/internal/pkg/paging"

	"gorm.io/gorm"
)

// ListItemsQueryHandler retrieves items across batches. Filtering happens in
// SQL; ordering and paging happen in memory through the paging utility so the
// sort key never reaches the database.
type ListItemsQueryHandler struct {
	db *gorm.DB
}

// NewListItemsQueryHandler creates a handler for cross-batch item listings.
func NewListItemsQueryHandler(db *gorm.DB) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db}
}

// Handle executes the query with the optional status and state filters.
func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) (paging.Result[ItemView], error) {
	if err := query.Validate(); err != nil {
		return paging.Result[ItemView]{}, err
	}

	sqlQuery := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := make([]any, 0, 2)

	if status := query.Status(); status != nil {
		sqlQuery += ` AND status = ?`
		args = append(args, int(*status))
	}
	if state := query.State(); state != "" {
		sqlQuery += ` AND state = ?`
		args = append(args, state)
	}
	sqlQuery += ` ORDER BY item_number`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
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
