// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasktrack/config"
	"tasktrack/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// It holds only the signing secret and TTL configuration; no state, no I/O.
type jwtService struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	defaultTTL := 30 * time.Minute
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		defaultTTL = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:     []byte(cfg.SecretKey.Access),
		defaultTTL: defaultTTL,
	}, nil
}

// Issue creates a signed HS256 token carrying the user ID as subject.
func (s *jwtService) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate checks the token's signature, structure and expiry.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}
		return nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	claims := &service.Claims{UserID: userID}
	if expiresAt, expErr := token.Claims.GetExpirationTime(); expErr == nil {
		claims.ExpiresAt = expiresAt
	}
	if issuedAt, iatErr := token.Claims.GetIssuedAt(); iatErr == nil {
		claims.IssuedAt = issuedAt
	}
	claims.Subject = subject

	return claims, nil
}
