// Package model holds the GORM persistence models. They mirror tables only;
// the domain entities live in internal/domain/entity and mapping happens once
// at the repository boundary.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates the UUID primary
// key; the unique index on email is the authoritative duplicate-email guard.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
