package queries

import (
	"context"

	"cargotrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetItemQueryHandler retrieves a single item from the database.
type GetItemQueryHandler struct {
	db *gorm.DB
}

// NewGetItemQueryHandler creates a handler for item lookups.
func NewGetItemQueryHandler(db *gorm.DB) GetItemQueryHandler {
	return GetItemQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no item
// exists with the requested identifier.
func (h GetItemQueryHandler) Handle(ctx context.Context, query GetItemQuery) (ItemView, error) {
	if err := query.Validate(); err != nil {
		return ItemView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+itemColumns+`
		FROM items
		WHERE id = ?
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return ItemView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ItemView{}, err
		}
		return ItemView{}, errs.NewObjectNotFoundError("item", query.ItemID().String())
	}

	view, err := scanItemRow(rows)
	if err != nil {
		return ItemView{}, err
	}

	return view, rows.Err()
}
