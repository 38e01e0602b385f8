package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (usecase.TaskUsecase, *MockTaskRepository) {
	t.Helper()

	taskRepo := &MockTaskRepository{}
	srv := NewTaskService(TaskServiceParams{
		TaskRepo: taskRepo,
		Logger:   newDiscardLogger(),
	})

	return srv, taskRepo
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestTaskService_CreateTask(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	taskRepo.On("Create", ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(args mock.Arguments) {
			task := args.Get(1).(*entity.Task)
			task.ID = taskID
			task.CreatedAt = time.Now()
			task.UpdatedAt = task.CreatedAt
		}).
		Return(nil)

	task, err := srv.CreateTask(ctx, ownerID, &usecase.CreateTaskInput{Title: "T1"})
	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, ownerID, task.OwnerID)
	assert.Equal(t, "T1", task.Title)
	assert.False(t, task.Completed)
}

func TestTaskService_CreateTask_TitleValidation(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	tests := []struct {
		name  string
		title string
	}{
		{name: "empty", title: ""},
		{name: "whitespace only", title: "   "},
		{name: "too long", title: strings.Repeat("x", 101)},
		{name: "too long multibyte", title: strings.Repeat("я", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := srv.CreateTask(ctx, ownerID, &usecase.CreateTaskInput{Title: tt.title})
			assert.Nil(t, task)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_CreateTask_TitleLengthCountsCharacters(t *testing.T) {
	// 100 multibyte characters exceed 100 bytes but stay within the limit.
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	title := strings.Repeat("я", 100)

	taskRepo.On("Create", ctx, mock.AnythingOfType("*entity.Task")).Return(nil)

	task, err := srv.CreateTask(ctx, ownerID, &usecase.CreateTaskInput{Title: title})
	require.NoError(t, err)
	assert.Equal(t, title, task.Title)
}

func TestTaskService_ListTasks(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	page := &repository.TaskPage{
		Items: []*entity.Task{{ID: uuid.New(), OwnerID: ownerID, Title: "T1"}},
		Total: 7,
		Page:  2,
		Size:  1,
	}
	taskRepo.On("ListByOwner", ctx, ownerID, 2, 1, repository.TaskFilter{}).Return(page, nil)

	result, err := srv.ListTasks(ctx, ownerID, &usecase.ListTasksInput{Page: 2, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Total)
	assert.Len(t, result.Items, 1)
}

func TestTaskService_ListTasks_Defaults(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	taskRepo.On("ListByOwner", ctx, ownerID, 1, 10, repository.TaskFilter{}).
		Return(&repository.TaskPage{Page: 1, Size: 10}, nil)

	_, err := srv.ListTasks(ctx, ownerID, &usecase.ListTasksInput{})
	require.NoError(t, err)
	taskRepo.AssertExpectations(t)
}

func TestTaskService_ListTasks_CompletedFilterPassedThrough(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	completed := boolPtr(true)

	taskRepo.On("ListByOwner", ctx, ownerID, 1, 10, repository.TaskFilter{Completed: completed}).
		Return(&repository.TaskPage{Page: 1, Size: 10}, nil)

	_, err := srv.ListTasks(ctx, ownerID, &usecase.ListTasksInput{Completed: completed})
	require.NoError(t, err)
	taskRepo.AssertExpectations(t)
}

func TestTaskService_ListTasks_WindowValidation(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	tests := []struct {
		name  string
		input *usecase.ListTasksInput
	}{
		{name: "negative page", input: &usecase.ListTasksInput{Page: -1, Size: 10}},
		{name: "zero-size window", input: &usecase.ListTasksInput{Page: 1, Size: -5}},
		{name: "oversized window", input: &usecase.ListTasksInput{Page: 1, Size: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.ListTasks(ctx, ownerID, tt.input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	taskRepo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_GetTask(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	task := &entity.Task{ID: taskID, OwnerID: ownerID, Title: "T1"}

	taskRepo.On("FindByIDAndOwner", ctx, taskID, ownerID).Return(task, nil)

	result, err := srv.GetTask(ctx, ownerID, taskID.String())
	require.NoError(t, err)
	assert.Equal(t, task, result)
}

func TestTaskService_GetTask_OwnershipMismatchIsNotFound(t *testing.T) {
	// A task that exists but belongs to someone else must look exactly like a
	// missing task.
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	otherOwner := uuid.New()
	taskID := uuid.New()

	taskRepo.On("FindByIDAndOwner", ctx, taskID, otherOwner).Return(nil, repository.ErrTaskNotFound)

	result, err := srv.GetTask(ctx, otherOwner, taskID.String())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_GetTask_MalformedIDFailsFast(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()

	result, err := srv.GetTask(ctx, uuid.New(), "not-a-valid-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
	taskRepo.AssertNotCalled(t, "FindByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	updated := &entity.Task{ID: taskID, OwnerID: ownerID, Title: "T1", Completed: true}

	taskRepo.On("Update", ctx, taskID, ownerID, map[string]any{"completed": true}).Return(updated, nil)

	result, err := srv.UpdateTask(ctx, ownerID, taskID.String(), &usecase.UpdateTaskInput{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, "T1", result.Title)
}

func TestTaskService_UpdateTask_EmptyInput(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()

	result, err := srv.UpdateTask(ctx, uuid.New(), uuid.NewString(), &usecase.UpdateTaskInput{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask_TitleValidation(t *testing.T) {
	srv, _ := newTaskService(t)
	ctx := context.Background()

	result, err := srv.UpdateTask(ctx, uuid.New(), uuid.NewString(), &usecase.UpdateTaskInput{Title: strPtr("  ")})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	result, err = srv.UpdateTask(ctx, uuid.New(), uuid.NewString(), &usecase.UpdateTaskInput{Title: strPtr(strings.Repeat("я", 101))})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTaskService_UpdateTask_TitleLengthCountsCharacters(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	title := strings.Repeat("я", 100)

	taskRepo.On("Update", ctx, taskID, ownerID, map[string]any{"title": title}).
		Return(&entity.Task{ID: taskID, OwnerID: ownerID, Title: title}, nil)

	result, err := srv.UpdateTask(ctx, ownerID, taskID.String(), &usecase.UpdateTaskInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, result.Title)
}

func TestTaskService_UpdateTask_OnlySuppliedFieldsForwarded(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	due := time.Now().Add(24 * time.Hour)

	expected := map[string]any{"title": "New title", "due_date": due}
	taskRepo.On("Update", ctx, taskID, ownerID, expected).
		Return(&entity.Task{ID: taskID, OwnerID: ownerID, Title: "New title", DueDate: &due}, nil)

	_, err := srv.UpdateTask(ctx, ownerID, taskID.String(), &usecase.UpdateTaskInput{
		Title:   strPtr("New title"),
		DueDate: &due,
	})
	require.NoError(t, err)
	taskRepo.AssertExpectations(t)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	taskRepo.On("Update", ctx, taskID, ownerID, mock.Anything).Return(nil, repository.ErrTaskNotFound)

	result, err := srv.UpdateTask(ctx, ownerID, taskID.String(), &usecase.UpdateTaskInput{Completed: boolPtr(true)})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	taskRepo.On("Delete", ctx, taskID, ownerID).Return(true, nil)

	err := srv.DeleteTask(ctx, ownerID, taskID.String())
	assert.NoError(t, err)
}

func TestTaskService_DeleteTask_NoMatchIsNotFound(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	taskRepo.On("Delete", ctx, taskID, ownerID).Return(false, nil)

	err := srv.DeleteTask(ctx, ownerID, taskID.String())
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_DeleteTask_MalformedIDFailsFast(t *testing.T) {
	srv, taskRepo := newTaskService(t)
	ctx := context.Background()

	err := srv.DeleteTask(ctx, uuid.New(), "12345")
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
	taskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
