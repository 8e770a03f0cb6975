// Package store persists assignments. Every implementation is atomic per
// record and returns lists newest-created first.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/helpers/apperr"
)

// Mutator edits a record in place inside Update. Returning an error aborts
// the update and leaves the record untouched.
type Mutator func(a *model.Assignment) error

// Store is the persistence contract of the assignment service.
type Store interface {
	// Insert assigns a new id and the created/updated timestamps, writing
	// them back into a, and returns the id.
	Insert(ctx context.Context, a *model.Assignment) (string, error)
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	FindByAssignee(ctx context.Context, assignee string) ([]model.Assignment, error)
	FindAll(ctx context.Context) ([]model.Assignment, error)
	// Update applies mutate to the current record and refreshes updatedAt.
	// id and createdAt cannot be changed by the mutator.
	Update(ctx context.Context, id string, mutate Mutator) (*model.Assignment, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close(ctx context.Context) error
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", apperr.Store("generate id", err)
	}
	return id.String(), nil
}

func notFound(id string) error {
	return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
}

// mutatorError marks errors raised by a Mutator so they are returned as-is
// rather than wrapped as store failures.
type mutatorError struct{ err error }

func (e mutatorError) Error() string { return e.err.Error() }
func (e mutatorError) Unwrap() error { return e.err }

func applyMutation(current model.Assignment, mutate Mutator) (model.Assignment, error) {
	next := current.Clone()
	if mutate != nil {
		if err := mutate(&next); err != nil {
			return model.Assignment{}, mutatorError{err: err}
		}
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	return next, nil
}
