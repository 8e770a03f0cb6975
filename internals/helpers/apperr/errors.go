// Package apperr defines the error kinds shared by the homework core and the
// HTTP layer. Callers match kinds with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrValidation is returned when a required field is missing or a value
	// is outside its enumeration.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation targets an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStore wraps failures of the underlying persistence layer.
	ErrStore = errors.New("store failure")

	// ErrUnauthenticated is returned when the caller identity is missing or
	// the credential could not be verified.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized is returned when the caller role is insufficient.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

// NewValidation builds a ValidationError from field/message pairs.
func NewValidation(fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StoreError wraps a persistence failure with the store operation name.
type StoreError struct {
	Op  string
	Err error
}

// Store wraps err as a StoreError. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

// Code returns the machine-readable kind of err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrStore):
		return "STORE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps the kind of err to a transport status code.
// Anything unclassified is treated as a server failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
