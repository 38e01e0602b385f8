// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasktrack/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user and their first access token.
type RegisterOutput struct {
	User        *entity.User
	AccessToken string
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines the authentication gateway: registration, login and
// token-to-user resolution. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Authenticate resolves a bearer token to an existing, active user.
	// Expired and malformed tokens are indistinguishable to the caller.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
