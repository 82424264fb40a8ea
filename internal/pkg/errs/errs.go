package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUpstreamFailure   = errors.New("upstream failure")
)

// IsValidation reports whether err is caused by malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrValueIsRequired)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause))
}

// withCauseChain lets errors.Is and errors.As reach both the sentinel and
// the cause.
func withCauseChain(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// ObjectNotFoundError reports a lookup by id that matched nothing.
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
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, strings.ReplaceAll(fmt.Sprintf("%s", e.ID), "\n", " "))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() []error {
	return withCauseChain(ErrValueIsInvalid, e.Cause)
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), sanitize(e.ParamName), sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	return withCauseChain(ErrValueIsOutOfRange, e.Cause)
}

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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() []error {
	return withCauseChain(ErrValueIsRequired, e.Cause)
}

// IllegalTransitionError is returned when a status change is not allowed
// from the status the object currently holds. Allowed lists the statuses
// that would have been accepted.
type IllegalTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func NewIllegalTransitionError(from, to string, allowed []string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Allowed: allowed}
}

func (e *IllegalTransitionError) Error() string {
	next := "none"
	if len(e.Allowed) > 0 {
		next = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: %s -> %s, allowed next: %s",
		ErrIllegalTransition, sanitize(e.From), sanitize(e.To), next)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// AccessDeniedError covers both a missing principal (Unauthenticated) and
// a principal lacking the required role or ownership.
type AccessDeniedError struct {
	Reason          string
	Unauthenticated bool
}

func NewAccessDeniedError(reason string) *AccessDeniedError {
	return &AccessDeniedError{Reason: reason}
}

func NewUnauthenticatedError(reason string) *AccessDeniedError {
	return &AccessDeniedError{Reason: reason, Unauthenticated: true}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Unwrap(), sanitize(e.Reason))
}

func (e *AccessDeniedError) Unwrap() error {
	if e.Unauthenticated {
		return ErrUnauthenticated
	}
	return ErrAccessDenied
}

// UpstreamError wraps a failure of an external collaborator such as the
// payment gateway. Its message is meant for logs, not for API responses.
type UpstreamError struct {
	Service string
	Cause   error
}

func NewUpstreamError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstreamFailure, sanitize(e.Service)), e.Cause)
}

func (e *UpstreamError) Unwrap() []error {
	return withCauseChain(ErrUpstreamFailure, e.Cause)
}
