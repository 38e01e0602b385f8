package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is an owner-scoped work item. It references its owner only by ID;
// tasks are never traversed from a User object graph.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // Fixed at creation, immutable afterwards.
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
