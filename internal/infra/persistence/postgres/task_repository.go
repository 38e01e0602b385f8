package postgres

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the repository.TaskRepository interface using GORM.
// Every query carries the owner_id predicate; ownership is enforced by the
// store's own atomic single-row operations, never by check-then-act sequences.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

// Create persists a new task with store-assigned ID and timestamps.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required task information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	// Update the entity with store-assigned values
	task.ID = taskM.ID
	task.Completed = taskM.Completed
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// FindByIDAndOwner retrieves a task matching both the task ID and owner ID.
// A task owned by someone else surfaces exactly like a missing task.
func (repo *taskRepository) FindByIDAndOwner(ctx context.Context, taskID, ownerID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find task")
	}

	return toTaskDomain(&taskM), nil
}

// ListByOwner returns one page of the owner's tasks, newest first. The total
// counts every match regardless of the pagination window.
func (repo *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, size int, filter repository.TaskFilter) (*repository.TaskPage, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("owner_id = ?", ownerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count tasks")
	}

	var taskModels []*model.TaskModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&taskModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list tasks")
	}

	items := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		items = append(items, toTaskDomain(taskM))
	}

	return &repository.TaskPage{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}

// Update overwrites only the given columns on the task matching both IDs and
// re-stamps updated_at. Zero affected rows means no owner-matched task exists.
func (repo *taskRepository) Update(ctx context.Context, taskID, ownerID uuid.UUID, changes map[string]any) (*entity.Task, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Updates(stampUpdatedAt(changes))

	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("missing required task information")
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrTaskNotFound
	}

	return repo.FindByIDAndOwner(ctx, taskID, ownerID)
}

// Delete removes the task matching both IDs and reports whether a row was removed.
func (repo *taskRepository) Delete(ctx context.Context, taskID, ownerID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&model.TaskModel{})

	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}

	return result.RowsAffected == 1, nil
}

// stampUpdatedAt copies the requested column changes and adds the updated_at
// re-stamp. The caller's map is never written to.
func stampUpdatedAt(changes map[string]any) map[string]any {
	stamped := make(map[string]any, len(changes)+1)
	for column, value := range changes {
		stamped[column] = value
	}
	stamped["updated_at"] = time.Now()

	return stamped
}

// --- Mapper Functions ---

// toTaskDomain converts a GORM TaskModel to a domain Task entity.
func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Title:       data.Title,
		Description: data.Description,
		DueDate:     data.DueDate,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromTaskDomain converts a domain Task entity to a GORM TaskModel for persistence.
func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Title:       data.Title,
		Description: data.Description,
		DueDate:     data.DueDate,
		Completed:   data.Completed,
	}
}
