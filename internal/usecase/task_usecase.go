package usecase

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTaskInput defines the data required to create a task. The owner comes
// from the authenticated caller, never from the payload.
type CreateTaskInput struct {
	Title       string     `json:"title" validate:"required,min=1,max=100"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// ListTasksInput defines the pagination window and optional completion filter.
type ListTasksInput struct {
	Page      int   `query:"page"`
	Size      int   `query:"size"`
	Completed *bool `query:"completed"`
}

// UpdateTaskInput carries a partial update; only non-nil fields are written.
type UpdateTaskInput struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

// IsEmpty reports whether no field was supplied.
func (in *UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.DueDate == nil && in.Completed == nil
}

// TaskUsecase defines ownership-scoped task operations. Every method receives
// the already-authenticated owner's identity; it is never re-derived here.
type TaskUsecase interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID, input *ListTasksInput) (*repository.TaskPage, error)
	GetTask(ctx context.Context, ownerID uuid.UUID, taskID string) (*entity.Task, error)
	UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID string, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID string) error
}
