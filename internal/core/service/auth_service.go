package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/api/metrics"
	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher domain.PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher domain.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

// Register validates the request, constructs the user and persists it. The
// checks short-circuit in a fixed order: missing fields, username length,
// password length, duplicate username.
func (s *AuthService) Register(ctx context.Context, username, password string) (*ports.RegisterResult, error) {
	if username == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "Username and password are required")
	}
	if len(username) < 3 {
		return nil, domain.NewValidationError("username", "Username must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, domain.NewValidationError("password", "Password must be at least 6 characters")
	}

	// Fast pre-check for a friendly duplicate error. The unique index on
	// username stays authoritative: a concurrent registration slipping past
	// this read loses at insert time with the same ErrUsernameTaken.
	if _, err := s.repo.FindByUsername(ctx, domain.NormalizeUsername(username)); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Msg("register: username lookup failed")
		return nil, err
	}

	user, err := domain.NewUser(username, password, s.hasher, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("register: persist failed")
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("username", created.Username).Msg("new user registered")

	return &ports.RegisterResult{Username: created.Username}, nil
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords produce the identical ErrInvalidCredentials, so callers cannot
// probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("login: username lookup failed")
		return nil, err
	}

	ok, err := user.VerifyPassword(password, s.hasher)
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("login: password comparison failed")
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{Username: user.Username, UserID: user.ID}, nil
}
