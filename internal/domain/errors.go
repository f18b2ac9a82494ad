// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPriority is returned when a task priority is not one of the
	// enumerated values.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when a task status is not one of the
	// enumerated values.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidRole is returned when a user role is not one of the
	// enumerated values.
	ErrInvalidRole = errors.New("invalid role")
)

// ValidationError carries the full ordered list of rule violations produced
// by the entity validators. Callers are expected to surface Violations
// verbatim rather than report only the first failure.
type ValidationError struct {
	Violations []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Violations, "; "))
}

// Unwrap allows errors.Is(err, ErrValidation) to match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
