package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// AuthService handles registration, login, and current-user lookup.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new account and returns the user with a signed
// session token. Duplicate usernames and emails come back from the
// repository as field errors, the same shape as any other invalid
// input — a taken username is the submitter's problem, not a fault.
func (s *AuthService) Register(ctx context.Context, f *form.Registration) (*model.User, string, error) {
	if fields := form.Validate(f); fields != nil {
		return nil, "", apperror.Invalid(fields)
	}

	hash, err := s.passwords.Hash(f.Password)
	if err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Username:     f.Username,
		Email:        f.Email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, "", err
		}
		s.logger.Error("failed to create user",
			slog.String("username", f.Username),
			slog.String("error", err.Error()),
		)
		return nil, "", fmt.Errorf("registering user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed session
// token. An unknown username and a wrong password both produce the same
// Unauthenticated error — the response must not reveal which half of
// the credentials was wrong.
func (s *AuthService) Login(ctx context.Context, f *form.Login) (*model.User, string, error) {
	if fields := form.Validate(f); fields != nil {
		return nil, "", apperror.Invalid(fields)
	}

	user, err := s.users.GetUserByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, "", apperror.Unauthenticated("invalid username or password")
		}
		s.logger.Error("failed to look up user",
			slog.String("username", f.Username),
			slog.String("error", err.Error()),
		)
		return nil, "", fmt.Errorf("logging in: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, f.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, "", apperror.Unauthenticated("invalid username or password")
		}
		return nil, "", fmt.Errorf("logging in: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("logging in: %w", err)
	}

	s.logger.Info("user logged in", slog.String("id", user.ID))

	return user, token, nil
}

// GetUser returns the user for an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}
