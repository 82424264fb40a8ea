// Package errs provides the error types shared by the order lifecycle and
// tracking code.
//
// Each type follows the same shape: a sentinel error variable, a struct with
// the details, New... constructors (with and without a cause), Error() and
// Unwrap(). Callers classify errors with errors.Is against the sentinels:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: malformed input (see IsValidation)
//   - ErrObjectNotFound: a referenced entity does not exist
//   - ErrIllegalTransition: an order status change rejected by the transition table
//   - ErrUnauthenticated, ErrAccessDenied: missing principal or insufficient rights
//   - ErrUpstreamFailure: a persistence, broker or gateway failure
//
// The HTTP adapter maps these sentinels to status codes in one place.
package errs
