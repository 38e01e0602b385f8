package repository

import (
	"context"
	"errors"

	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable.
var ErrTaskNotFound = errors.New("task not found")

// TaskPage is one window of an owner's task list plus the full matching count.
type TaskPage struct {
	Items []*entity.Task
	Total int64
	Page  int
	Size  int
}

// TaskFilter narrows a listing beyond the mandatory owner match.
type TaskFilter struct {
	// Completed restricts results to the given completion state when non-nil.
	Completed *bool
}

// TaskRepository defines ownership-scoped operations for task persistence.
// Every method takes the already-authenticated owner's ID; implementations
// must never return or mutate a task whose owner_id differs.
type TaskRepository interface {
	// Create persists a new task with store-assigned ID and timestamps.
	Create(ctx context.Context, task *entity.Task) error

	// FindByIDAndOwner retrieves a task matching both the task ID and owner ID.
	FindByIDAndOwner(ctx context.Context, taskID, ownerID uuid.UUID) (*entity.Task, error)

	// ListByOwner returns one page of the owner's tasks ordered by creation
	// time, newest first. Total counts all matches independent of the window.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, size int, filter TaskFilter) (*TaskPage, error)

	// Update overwrites only the given columns on the task matching both IDs,
	// re-stamping updated_at, and returns the updated task.
	Update(ctx context.Context, taskID, ownerID uuid.UUID, changes map[string]any) (*entity.Task, error)

	// Delete removes the task matching both IDs. It reports whether exactly
	// one row was removed; a missing match is not an error.
	Delete(ctx context.Context, taskID, ownerID uuid.UUID) (bool, error)
}
