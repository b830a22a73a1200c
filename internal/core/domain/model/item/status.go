package item

import (
	"fmt"

	"cargotrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a tracked item.
// It implements a pure, side-effect-free state machine so transition rules can
// be tested independently of persistence.
//
// State transitions:
//
//	Received ──> Stored ──> Dispatched ──> InTransit ──> Delivered
//	                            │              │
//	                            └──> Failed <──┘
//
// Received is the only initial state. Delivered and Failed are terminal.
// Status only ever advances forward; any request outside the adjacency table
// fails with an invalid transition error.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status assigned at batch ingestion.
	Received

	// Stored indicates the item has been checked in at a hub.
	Stored

	// Dispatched indicates the item has been assigned to a rider.
	Dispatched

	// InTransit indicates the rider has picked the item up.
	InTransit

	// Delivered indicates completion with proof of delivery. Terminal.
	Delivered

	// Failed indicates the delivery attempt failed. Terminal.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Received:   "Received",
		Stored:     "Stored",
		Dispatched: "Dispatched",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
		Failed:     "Failed",
	}
}

// getTransitions returns the legal adjacency table of the item lifecycle.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:   {Stored},
		Stored:     {Dispatched},
		Dispatched: {InTransit, Failed},
		InTransit:  {Delivered, Failed},
		Delivered:  {},
		Failed:     {},
	}
}

// StatusFromString parses a status name as it appears in events and query
// filters. Returns an error for unrecognized names, including "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// CanTransitionTo reports whether moving to target is legal from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo advances the status to target if the move is legal.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, error) wrapping errs.ErrInvalidTransition otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError("item", s.String(), target.String())
	}
	return target, nil
}
