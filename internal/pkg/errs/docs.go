// Package errs provides standardized error types for the cargotrack application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the tracking core:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or out of place
//   - ObjectNotFoundError: an entity id does not resolve
//   - InvalidTransitionError: a state machine rejected the requested move
//   - DuplicateIdentifierError: a generated identifier collided with an existing one
//   - DependencyUnavailableError: a synchronous cross-service lookup failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, which keeps
// transport-level mapping (HTTP status codes, log severity) out of the domain.
package errs
