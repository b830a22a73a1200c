// Package paging provides the generic, injection-safe ordering and paging
// primitive used by every query surface. Sorting is restricted to an explicit
// whitelist of comparator functions supplied by the caller, so a sort key can
// never reach the storage layer or be resolved through reflection.
package paging

import (
	"sort"
	"strings"
)

// Result is a single page of a collection together with paging metadata.
// TotalRecords always reflects the full collection size, not the page size.
type Result[T any] struct {
	Items        []T `json:"items"`
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// Comparators maps allowed sort-key names to ordering functions.
// A comparator returns a negative value when a orders before b,
// zero when equal, positive otherwise.
type Comparators[T any] map[string]func(a, b T) int

// Page slices the collection into the requested page.
//
// Page numbers start at 1; values below 1 are clamped to the first page.
// A pageSize of 0 means "return everything on one page": the effective page
// size becomes the total record count.
//
// sortSpec has the form "<field> [asc|desc]" (order defaults to asc). An
// unrecognized field name is a deliberate no-op: the collection is returned
// unsorted rather than rejected. This permissive behavior is carried over
// from the upstream contract.
func Page[T any](collection []T, pageNumber, pageSize int, sortSpec string, comparators Comparators[T]) Result[T] {
	items := make([]T, len(collection))
	copy(items, collection)

	applySort(items, sortSpec, comparators)

	total := len(items)
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}

	effectiveSize := pageSize
	totalPages := 1
	if pageSize == 0 {
		effectiveSize = total
	} else {
		totalPages = (total + pageSize - 1) / pageSize
		if totalPages == 0 {
			totalPages = 1
		}
	}

	start := (pageNumber - 1) * effectiveSize
	if pageSize == 0 {
		start = 0
		if pageNumber > 1 {
			start = total
		}
	}
	if start > total {
		start = total
	}
	end := start + effectiveSize
	if pageSize == 0 {
		end = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:        items[start:end],
		CurrentPage:  pageNumber,
		PageSize:     effectiveSize,
		TotalRecords: total,
		TotalPages:   totalPages,
	}
}

func applySort[T any](items []T, sortSpec string, comparators Comparators[T]) {
	fields := strings.Fields(strings.TrimSpace(sortSpec))
	if len(fields) == 0 {
		return
	}

	cmp, ok := comparators[fields[0]]
	if !ok {
		// Unknown sort key: fall back to unsorted, not an error.
		return
	}

	descending := len(fields) > 1 && strings.EqualFold(fields[1], "desc")
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return cmp(items[i], items[j]) > 0
		}
		return cmp(items[i], items[j]) < 0
	})
}
