package queries

import (
	"errors"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/guard"
)

var ErrListBatchItemsQueryIsNotConstructed = errors.New(
	"ListBatchItemsQuery must be created via NewListBatchItemsQuery constructor",
)

// ListBatchItemsQuery retrieves the items ingested with one batch, paginated.
type ListBatchItemsQuery struct {
	batchID    kernel.UUID
	pageNumber int
	pageSize   int
	sortSpec   string

	guard guard.ConstructorGuard
}

// NewListBatchItemsQuery creates a query to list a batch's items.
// pageSize 0 returns everything on one page; sortSpec is "<field> [asc|desc]"
// against the item sort-key whitelist.
func NewListBatchItemsQuery(batchID kernel.UUID, pageNumber, pageSize int, sortSpec string) (ListBatchItemsQuery, error) {
	if err := batchID.Validate(); err != nil {
		return ListBatchItemsQuery{}, err
	}

	return ListBatchItemsQuery{
		batchID:    batchID,
		pageNumber: pageNumber,
		pageSize:   pageSize,
		sortSpec:   sortSpec,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListBatchItemsQuery) Validate() error {
	return q.guard.Validate(ErrListBatchItemsQueryIsNotConstructed)
}

// BatchID returns the identifier of the batch whose items are listed.
func (q ListBatchItemsQuery) BatchID() kernel.UUID {
	return q.batchID
}

// PageNumber returns the 1-based page number.
func (q ListBatchItemsQuery) PageNumber() int {
	return q.pageNumber
}

// PageSize returns the requested page size.
func (q ListBatchItemsQuery) PageSize() int {
	return q.pageSize
}

// SortSpec returns the requested sort specification.
func (q ListBatchItemsQuery) SortSpec() string {
	return q.sortSpec
}
