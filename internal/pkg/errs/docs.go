// Package errs provides standardized error types for the cafe application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for validation failures:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside of its bounds
//
// and error types for the failure kinds reported by the order core:
//   - ObjectNotFoundError: an order or tracked line item does not exist
//   - ItemNotFoundError: the menu catalog has no item with the given name
//   - ForbiddenError: the caller's role or ownership does not allow the operation
//   - OrderClosedError: a mutation was attempted on a paid order
//   - LockedError: a comment was attempted on an item in preparation or on a settled order
//   - AllocationFailedError: no order identifier could be allocated
//   - StorageUnavailableError: the storage collaborator failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// All validation errors additionally match ErrInvalidInput with errors.Is, so callers
// can classify a failure without knowing which validation rule produced it.
package errs
