package batch

import (
	"fmt"

	"cargotrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a manifest batch.
//
// State transitions (forward only, no skipping backwards):
//
//	Processing ──> Ready ──> Dispatched ──> Completed
//
// Batch status is derived from the statuses of the batch's items by the
// reconciliation job; it never retroactively changes the item count.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Processing is the initial status assigned at ingestion.
	Processing

	// Ready indicates every item in the batch has been checked in at a hub.
	Ready

	// Dispatched indicates at least one item has been handed to a rider.
	Dispatched

	// Completed indicates every item in the batch reached a terminal state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Processing:    "processing",
		Ready:         "ready",
		Dispatched:    "dispatched",
		Completed:     "completed",
	}
}

// StatusFromString parses a batch status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("batchStatus",
		fmt.Errorf("%q is not a valid batch status", s))
}

// Validate checks the Status value is one of the defined states.
func (s Status) Validate() error {
	if s < Processing || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("batchStatus",
			fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the lowercase status name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanAdvanceTo reports whether target is strictly ahead of s in the lifecycle.
func (s Status) CanAdvanceTo(target Status) bool {
	return target.Validate() == nil && target > s
}
