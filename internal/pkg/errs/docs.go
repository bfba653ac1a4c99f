// Package errs provides standardized error types for the forwarding application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity does not exist
//   - ForbiddenError: the caller's role may not perform the action
//   - ConflictError, InvalidTransitionError: the entity's state does not permit the change
//   - IncompatibleOrdersError: a combination precondition was violated
//   - StoreUnavailableError: the persistence collaborator failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
package errs
