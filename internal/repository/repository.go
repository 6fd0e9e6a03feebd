package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidType is returned when a repository receives a resource of
	// the wrong concrete type.
	ErrInvalidType = errors.New("invalid resource type")
)

// Repository defines the interface for a generic repository that can manage resources.
type Repository interface {
	Create(ctx context.Context, resource Resource) (result Resource, err error)
	List(ctx context.Context, query Query) (result []Resource, err error)
	FindByID(ctx context.Context, id uuid.UUID) (result Resource, err error)
	Update(ctx context.Context, resource Resource) (result Resource, err error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	WithinTransaction(ctx context.Context, fn func(repo Repository) error) error
}

// EventStatusUpdater updates the processing status of outbox events.
type EventStatusUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus) error
}

// Resource represents a generic resource that can be managed by the repository.
type Resource interface {
	InitMeta()
}

// UniqueConstraintError represents a database unique constraint violation,
// e.g. a duplicate (owner, name) template pair.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
