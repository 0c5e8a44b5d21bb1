package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks. Every read and
// write is scoped by the owning user's id; a task owned by someone else
// is indistinguishable from a missing one.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts TaskListOptions) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error
	ListImageKeysByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error)
}

// Task represents a stored task owned by a single user.
type Task struct {
	ID          uuid.UUID
	Description string `validate:"required"`
	Completed   bool
	OwnerID     uuid.UUID
	ImageKey    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate carries the fields PATCH /tasks/{id} may change.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// TaskAllowedUpdates is the static allow-list of mutable task fields.
var TaskAllowedUpdates = []string{"description", "completed"}

// SortDirection orders a task listing.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// TaskListOptions filters, paginates and sorts a task listing.
// Offset is derived from Page: limit*(page-1), omitted when Page is unset.
type TaskListOptions struct {
	Completed *bool
	Limit     int
	Page      int
	SortBy    string
	SortDir   SortDirection
}

// TaskSortColumns is the allow-list of sortable columns. Sort input not
// present here falls back to created_at; raw input never reaches a query.
var TaskSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}
