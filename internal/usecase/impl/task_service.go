package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxTitleLength = 100
	maxPageSize    = 100
)

// taskService implements the TaskUsecase interface. The owner identity always
// arrives as an argument from an already-authenticated caller.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

// CreateTask persists a new task for the owner. Completed defaults to false
// and the owner is forced to the authenticated identity regardless of payload.
func (srv *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	task := &entity.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		srv.logger.Error("Failed to create task", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.logger.Debug("Task created", slog.Any("taskID", task.ID), slog.Any("ownerID", ownerID))

	return task, nil
}

// ListTasks returns one page of the owner's tasks, newest first.
func (srv *taskService) ListTasks(ctx context.Context, ownerID uuid.UUID, input *usecase.ListTasksInput) (*repository.TaskPage, error) {
	page := input.Page
	if page == 0 {
		page = 1
	}
	size := input.Size
	if size == 0 {
		size = 10
	}

	if page < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "page must be at least 1")
	}
	if size < 1 || size > maxPageSize {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "size must be between 1 and 100")
	}

	result, err := srv.taskRepo.ListByOwner(ctx, ownerID, page, size, repository.TaskFilter{Completed: input.Completed})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return result, nil
}

// GetTask retrieves a single task by ID for the owner.
func (srv *taskService) GetTask(ctx context.Context, ownerID uuid.UUID, taskID string) (*entity.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return nil, err
	}

	task, err := srv.taskRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTaskNotFound, "task not found")
		}

		return nil, errors.Wrap(err, "failed to get task")
	}

	return task, nil
}

// UpdateTask applies a partial update to the owner's task. At least one field
// must be supplied; untouched fields keep their prior value, and updated_at is
// always re-stamped by the store layer.
func (srv *taskService) UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID string, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return nil, err
	}

	if input.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "at least one field must be provided")
	}

	changes := make(map[string]any, 4)
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.DueDate != nil {
		changes["due_date"] = *input.DueDate
	}
	if input.Completed != nil {
		changes["completed"] = *input.Completed
	}

	task, err := srv.taskRepo.Update(ctx, id, ownerID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTaskNotFound, "task not found")
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	srv.logger.Debug("Task updated", slog.Any("taskID", task.ID), slog.Any("ownerID", ownerID))

	return task, nil
}

// DeleteTask removes the owner's task. A missing or foreign-owned task maps to
// the not-found error at this boundary.
func (srv *taskService) DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID string) error {
	id, err := parseTaskID(taskID)
	if err != nil {
		return err
	}

	deleted, err := srv.taskRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return errors.Wrap(err, "failed to delete task")
	}
	if !deleted {
		return errors.Wrap(domainerrors.ErrTaskNotFound, "task not found")
	}

	srv.logger.Debug("Task deleted", slog.Any("taskID", id), slog.Any("ownerID", ownerID))

	return nil
}

// validateTitle bounds the title to 1..100 characters. The limit counts
// characters, not bytes, so multibyte titles are measured the same way the
// request validator measures them.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return errors.Wrap(domainerrors.ErrValidationFailed, "title must be between 1 and 100 characters")
	}

	return nil
}

// parseTaskID rejects malformed identifiers before any store round-trip. A
// malformed ID is indistinguishable from a missing task.
func parseTaskID(taskID string) (uuid.UUID, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrTaskNotFound, "malformed task id")
	}

	return id, nil
}
