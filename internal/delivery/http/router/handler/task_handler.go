package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/delivery/http/response"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskPageResponse is one page of the owner's tasks plus the paging window.
type TaskPageResponse struct {
	Items []TaskResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

func toTaskResponse(task *entity.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		OwnerID:     task.OwnerID.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTaskPageResponse(page *repository.TaskPage) TaskPageResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		items = append(items, toTaskResponse(task))
	}

	return TaskPageResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
	}
}

// TaskHandler holds dependencies for task handlers. Every route it serves sits
// behind the auth middleware, so the current user is always on the context.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateTask handles the task creation request.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	var input *usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	task, err := h.uc.CreateTask(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTaskResponse(task), "Task created successfully")
}

// ListTasks handles the paginated task listing request.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	var input usecase.ListTasksInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pagination parameters")
	}

	page, err := h.uc.ListTasks(c.Request().Context(), user.ID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskPageResponse(page), "Tasks retrieved successfully")
}

// GetTask handles the single-task retrieval request.
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	task, err := h.uc.GetTask(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task), "Task retrieved successfully")
}

// UpdateTask handles the partial task update request.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	var input *usecase.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	task, err := h.uc.UpdateTask(c.Request().Context(), user.ID, c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task), "Task updated successfully")
}

// DeleteTask handles the task deletion request.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	if err := h.uc.DeleteTask(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
