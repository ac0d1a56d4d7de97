// Package errs provides standardized error types for the storefront application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for each failure category of the order core:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input (validation)
//   - ObjectNotFoundError: an order or catalog product does not exist
//   - StatusConflictError: a status precondition was violated
//   - NotOwnerError: the acting principal is not entitled to the object
//   - UnavailableError: a collaborator could not be reached; the only retryable category
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the error
package errs
