package kernel

import (
	"errors"
	"strings"

	"cargotrack/internal/pkg/errs"
)

// Address is the delivery destination of an item: a street address plus the
// state and LGA (local government area) used for regional routing and
// query-side filtering.
type Address struct {
	street string
	state  string
	lga    string
}

// NewAddress creates a validated Address. Street, state, and LGA are all
// required; values are trimmed of surrounding whitespace.
func NewAddress(street, state, lga string) (Address, error) {
	street = strings.TrimSpace(street)
	state = strings.TrimSpace(state)
	lga = strings.TrimSpace(lga)

	var err error
	if street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address"))
	}
	if state == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("state"))
	}
	if lga == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("lga"))
	}
	if err != nil {
		return Address{}, err
	}

	return Address{street: street, state: state, lga: lga}, nil
}

// Street returns the street address line.
func (a Address) Street() string {
	return a.street
}

// State returns the destination state.
func (a Address) State() string {
	return a.state
}

// LGA returns the destination local government area.
func (a Address) LGA() string {
	return a.lga
}

// Validate checks the address carries all required fields.
func (a Address) Validate() error {
	if a.street == "" || a.state == "" || a.lga == "" {
		return errs.NewValueIsRequiredError("address must be created via NewAddress")
	}
	return nil
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a == other
}
