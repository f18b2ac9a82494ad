// Package service implements the application's use cases on top of the
// domain entities and stores. Services run validation before any mutation
// reaches the owning collection.
package service

import "errors"

// Service-level errors.
var (
	// ErrLastAdmin is returned when an operation would leave the user
	// collection without any ADMIN user. At least one admin must exist at
	// all times.
	ErrLastAdmin = errors.New("cannot remove the last admin user")

	// ErrUserInactive is returned when an inactive user attempts to
	// authenticate.
	ErrUserInactive = errors.New("user account is inactive")
)
