package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValueIsRequired       = errors.New("value is required")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrObjectNotFound        = errors.New("object not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrDuplicateIdentifier   = errors.New("duplicate identifier")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// sanitize flattens multi-line input so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValueIsRequiredError indicates a required value was missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates an entity id did not resolve to a stored object.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError indicates a lifecycle state machine rejected the move.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
	Cause  error
}

func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(entity, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s cannot move from %s to %s (cause: %s)",
			ErrInvalidTransition, sanitize(e.Entity), sanitize(e.From), sanitize(e.To), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, sanitize(e.Entity), sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// DuplicateIdentifierError indicates a generated identifier collided with an
// existing row. Collisions are surfaced, never silently retried.
type DuplicateIdentifierError struct {
	ParamName string
	Value     string
	Cause     error
}

func NewDuplicateIdentifierError(paramName, value string) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{ParamName: paramName, Value: value}
}

func NewDuplicateIdentifierErrorWithCause(paramName, value string, cause error) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %q (cause: %s)",
			ErrDuplicateIdentifier, sanitize(e.ParamName), e.Value, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s %q", ErrDuplicateIdentifier, sanitize(e.ParamName), e.Value)
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// DependencyUnavailableError indicates a synchronous cross-service call failed
// or timed out. Timeout expiry is treated the same as an outright failure.
type DependencyUnavailableError struct {
	Dependency string
	Cause      error
}

func NewDependencyUnavailableError(dependency string) *DependencyUnavailableError {
	return &DependencyUnavailableError{Dependency: dependency}
}

func NewDependencyUnavailableErrorWithCause(dependency string, cause error) *DependencyUnavailableError {
	return &DependencyUnavailableError{Dependency: dependency, Cause: cause}
}

func (e *DependencyUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrDependencyUnavailable, sanitize(e.Dependency), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrDependencyUnavailable, sanitize(e.Dependency))
}

func (e *DependencyUnavailableError) Unwrap() error {
	return ErrDependencyUnavailable
}
