package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table. OwnerID references users.id but is kept
// as a plain identifier; tasks are always queried by owner, never preloaded
// from a user object graph.
type TaskModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_owner_created"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description *string   `gorm:"type:text"`
	DueDate     *time.Time
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_owner_created"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
