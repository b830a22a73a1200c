package queries

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var ErrGetItemQueryIsNotConstructed = errors.New(
	"GetItemQuery must be created via NewGetItemQuery constructor",
)

// GetItemQuery retrieves one item by its identifier. This is the lookup the
// notification dispatcher uses to resolve applicant contact details.
type GetItemQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetItemQuery creates a query to retrieve an item.
func NewGetItemQuery(itemID kernel.UUID) (GetItemQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemQuery{}, err
	}

	return GetItemQuery{
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemQuery) Validate() error {
	return q.guard.Validate(ErrGetItemQueryIsNotConstructed)
}

// ItemID returns the identifier of the requested item.
func (q GetItemQuery) ItemID() kernel.UUID {
	return q.itemID
}
