package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository mocks ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, taskID, ownerID uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, size int, filter repository.TaskFilter) (*repository.TaskPage, error) {
	args := m.Called(ctx, ownerID, page, size, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, taskID, ownerID uuid.UUID, changes map[string]any) (*entity.Task, error) {
	args := m.Called(ctx, taskID, ownerID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, taskID, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, taskID, ownerID)
	return args.Bool(0), args.Error(1)
}

// --- service mocks ---

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	args := m.Called(userID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
