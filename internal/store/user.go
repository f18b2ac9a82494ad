package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for the owning user collection.
//
// Read methods return defensive copies. Invariants that span the whole
// collection (such as keeping at least one admin) are enforced by the
// user service, not here.
type UserStore interface {
	// Create adds a new user to the collection.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update replaces an existing user's record.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the collection by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every user in the collection, in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
}
