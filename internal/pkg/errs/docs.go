// Package errs provides standardized error types for the picking service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Value errors: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError
//   - Scan errors: ParseError, PolicyViolationError, DuplicateSerialError,
//     QuantityConflictError, ValidationError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Scan errors are split by recoverability. ParseError, PolicyViolationError and
// DuplicateSerialError abandon the current scan and are surfaced to the operator.
// QuantityConflictError is a warning: the quantity is clamped and processing continues.
// ValidationError comes from document finalization and is returned to the caller.
package errs
