package item

import (
	"fmt"
	"regexp"

	"cargotrack/internal/pkg/errs"
)

// itemNumberPattern matches the tracking number format "CB-<year>-<6 digits>".
var itemNumberPattern = regexp.MustCompile(`^CB-\d{4}-\d{6}$`)

// Number is the globally unique, human-readable tracking number of an item.
// It is assigned once at ingestion and never changes; uniqueness is enforced
// by the persistence layer and surfaced as a duplicate identifier error.
type Number struct {
	value string
}

// NewNumber validates and wraps a tracking number string.
func NewNumber(value string) (Number, error) {
	if value == "" {
		return Number{}, errs.NewValueIsRequiredError("itemNumber")
	}
	if !itemNumberPattern.MatchString(value) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("itemNumber",
			fmt.Errorf("%q does not match CB-<year>-<6 digits>", value))
	}
	return Number{value: value}, nil
}

// String returns the tracking number, e.g. "CB-2024-000001".
func (n Number) String() string {
	return n.value
}

// Validate checks the number was created via NewNumber.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("itemNumber must be created via NewNumber")
	}
	return nil
}

// IsEqual compares two tracking numbers.
func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}
