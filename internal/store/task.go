// Package store defines the interfaces for the owning collections. The
// collections are exclusively owned by their store implementation and are
// handed to services by reference; nothing reaches them through ambient
// state.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for the owning task collection.
//
// Read methods return defensive copies: callers may freely mutate what they
// get back without affecting the collection, and must go through Update to
// persist a change.
type TaskStore interface {
	// Create adds a new task to the collection.
	// Returns ErrTaskExists if a task with the same ID is already present.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update replaces an existing task's record.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the collection by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every task in the collection, in insertion order.
	// The returned slice is a read-only view suitable for the query engine.
	List(ctx context.Context) ([]*domain.Task, error)
}
