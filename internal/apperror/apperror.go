// Package apperror defines the application's error taxonomy.
//
// WHY SENTINEL ERRORS + A WRAPPER TYPE?
// Services return domain errors (not HTTP status codes), and handlers
// translate them at the edge. The sentinel values below are what callers
// check with errors.Is(); the *AppError wrapper carries the human-readable
// message (and, for validation problems, the offending field) alongside.
//
//	service returns: apperror.NotFound("course", id)
//	handler checks:  errors.Is(err, apperror.ErrNotFound) → 404
//
// The same pattern would map cleanly onto gRPC codes or CLI messages —
// nothing in this package knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AppError is a domain error with a human-readable message.
// Field is set when the error concerns a single form field.
type AppError struct {
	Err     error  // sentinel cause (one of the vars above)
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing resource. Per the access policy, it is also
// returned for resources that exist but belong to another user — the API
// must not reveal whether a foreign resource exists.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a single-field validation problem.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Duplicate reports a unique-constraint violation as a field error.
// Duplicates are a user-facing outcome ("this username is taken"),
// not a server fault, so they share the validation sentinel and are
// surfaced with the field-error map like any other invalid input.
func Duplicate(resource, field string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("a %s with this %s already exists", resource, field),
		Field:   field,
	}
}

// Conflict reports a state conflict that is not tied to one field.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden. Unused by the uniform
// NotFound-masking access policy, kept for completeness of the taxonomy.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthenticated reports a missing or invalid session.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// ValidationError carries a whole field-error map — the result of running
// a form through the validator. It wraps ErrValidation so errors.Is()
// works the same as for single-field failures.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid wraps a field-error map into an error. Callers retrieve the
// map back with errors.As.
func Invalid(fields map[string][]string) error {
	return &ValidationError{Fields: fields}
}
