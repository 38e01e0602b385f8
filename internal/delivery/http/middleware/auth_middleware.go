// Package middleware contains HTTP middleware for the delivery layer.
package middleware

import (
	"strings"

	"tasktrack/internal/delivery/http/response"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
)

// userContextKey is where the resolved account is stashed on the echo context.
const userContextKey = "currentUser"

// AuthMiddleware guards routes behind bearer-token authentication. The token
// is resolved to a full, active account on every request so revoked or
// deactivated users are cut off immediately.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate validates the Authorization header and stores the resolved
// user on the context for handlers to use.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		user, err := m.authUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
		}

		c.Set(userContextKey, user)

		return next(c)
	}
}

// CurrentUser returns the account the auth middleware resolved for this
// request. The second return is false on routes the middleware never ran on.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(userContextKey).(*entity.User)
	return user, ok
}
