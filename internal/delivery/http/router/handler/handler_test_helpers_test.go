package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"tasktrack/internal/delivery/http/validator"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestContext builds an echo context with the validator installed, the way
// the real server configures it.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// setAuthenticatedUser mirrors what the auth middleware does after resolving
// a bearer token.
func setAuthenticatedUser(c echo.Context, user *entity.User) {
	c.Set("currentUser", user)
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockTaskUsecase struct {
	mock.Mock
}

func (m *MockTaskUsecase) CreateTask(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskUsecase) ListTasks(ctx context.Context, ownerID uuid.UUID, input *usecase.ListTasksInput) (*repository.TaskPage, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TaskPage), args.Error(1)
}

func (m *MockTaskUsecase) GetTask(ctx context.Context, ownerID uuid.UUID, taskID string) (*entity.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskUsecase) UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID string, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskUsecase) DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID string) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}
