package queries

import (
	"errors"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/pkg/guard"
)

var ErrListItemsQueryIsNotConstructed = errors.New(
	"ListItemsQuery must be created via NewListItemsQuery constructor",
)

// ListItemsQuery retrieves items across batches with optional status and
// destination-state filters, paginated.
type ListItemsQuery struct {
	status     *item.Status
	state      string
	pageNumber int
	pageSize   int
	sortSpec   string

	guard guard.ConstructorGuard
}

// NewListItemsQuery creates a query to list items. statusFilter and
// stateFilter are optional; an empty string disables the filter. An
// unrecognized status name fails here, before the database is touched.
func NewListItemsQuery(statusFilter, stateFilter string, pageNumber, pageSize int, sortSpec string) (ListItemsQuery, error) {
	listQuery := ListItemsQuery{
		state:      stateFilter,
		pageNumber: pageNumber,
		pageSize:   pageSize,
		sortSpec:   sortSpec,
		guard:      guard.NewConstructorGuard(),
	}

	if statusFilter != "" {
		status, err := item.StatusFromString(statusFilter)
		if err != nil {
			return ListItemsQuery{}, err
		}
		listQuery.status = &status
	}

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

// Status returns the parsed status filter, or nil when unfiltered.
func (q ListItemsQuery) Status() *item.Status {
	return q.status
}

// State returns the destination-state filter, empty when unfiltered.
func (q ListItemsQuery) State() string {
	return q.state
}

// PageNumber returns the 1-based page number.
func (q ListItemsQuery) PageNumber() int {
	return q.pageNumber
}

// PageSize returns the requested page size.
func (q ListItemsQuery) PageSize() int {
	return q.pageSize
}

// SortSpec returns the requested sort specification.
func (q ListItemsQuery) SortSpec() string {
	return q.sortSpec
}
