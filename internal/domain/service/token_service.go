package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation failures. Any correctly-signed, unexpired token stays valid
// for its full lifetime; there is no revocation.
var (
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for a bad signature, malformed structure,
	// unexpected signing method, or missing subject claim.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// Implementations are stateless: only the signing secret and TTL configuration,
// no I/O and no lookups.
type TokenService interface {
	// Issue creates a signed token with the user ID as subject. A non-positive
	// ttl falls back to the configured default.
	Issue(userID uuid.UUID, ttl time.Duration) (string, error)

	// Validate checks the token's signature, structure and expiry and returns
	// its claims.
	Validate(tokenString string) (*Claims, error)
}
