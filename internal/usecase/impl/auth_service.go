// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It orchestrates the
// password hasher, token service and user repository; it holds no state of
// its own beyond those collaborators.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register creates a new account and issues its first access token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email and password are required")
	}

	srv.logger.Info("Starting registration", slog.String("email", email))

	// Fast, non-authoritative early return. The unique index on email is the
	// authoritative guard; concurrent registrations race past this lookup and
	// are caught by the constraint violation below.
	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	accessToken, err := srv.tokenService.Issue(newUser.ID, 0)
	if err != nil {
		srv.logger.Error("Failed to issue token during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during registration")
	}

	srv.logger.Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser, AccessToken: accessToken}, nil
}

// Login verifies credentials and issues an access token. Unknown email, wrong
// password and inactive account all collapse into the same error so the
// response carries no signal about which check failed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	if !srv.hasher.Check(input.Password, user.HashedPassword) {
		srv.logger.Warn("Password mismatch during login", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.IsActive {
		srv.logger.Warn("Login attempt on inactive account", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "account inactive")
	}

	accessToken, err := srv.tokenService.Issue(user.ID, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.logger.Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{AccessToken: accessToken, User: user}, nil
}

// Authenticate resolves a bearer token to an existing, active user. Expired
// and malformed tokens, unknown subjects and inactive accounts all surface as
// the same unauthorized error.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject does not exist")
		}

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	if !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "account inactive")
	}

	return user, nil
}
