// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated principal that owns resources in the system.
// The stored credential is always the opaque digest, never the plaintext password.
type User struct {
	ID             uuid.UUID // Store-assigned, immutable identifier.
	Email          string    // Login identifier, globally unique.
	HashedPassword string    // Salted one-way digest of the password.
	IsActive       bool      // Inactive accounts cannot log in or authenticate.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
