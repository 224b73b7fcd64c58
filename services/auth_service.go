package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

const bcryptCost = 12

// AuthService handles registration and login. Failed logins are counted
// in a shared attempt store; accounts lock for the remainder of the
// window once the limit is reached.
type AuthService struct {
	users    repository.UserRepository
	tokens   *TokenService
	attempts *LoginAttemptStore
	logger   *zap.Logger
}

// NewAuthService creates an AuthService. attempts may be nil, in which
// case login attempt tracking is disabled.
func NewAuthService(users repository.UserRepository, tokens *TokenService, attempts *LoginAttemptStore, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, attempts: attempts, logger: logger}
}

// Register creates a new account and returns a signed auth token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	if username == "" || email == "" || password == "" {
		return "", NewFieldError("", "all fields must be filled")
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateUsername(username); err != nil {
		return "", err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return "", NewFieldError("username", "this username is already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", NewFieldError("email", "this email is already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			return "", NewFieldError("username", "this username or email is already in use")
		}
		return "", err
	}

	s.logger.Info("user registered", zap.String("user", user.ID.Hex()))
	return s.tokens.Generate(user)
}

// Login verifies the credentials and returns a signed auth token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewFieldError("", "all fields must be filled")
	}

	if s.attempts != nil {
		locked, err := s.attempts.Locked(ctx, email)
		if err != nil {
			s.logger.Warn("login attempt check failed", zap.Error(err))
		} else if locked {
			return "", ErrAccountLocked
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, email)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailure(ctx, email)
		return "", ErrInvalidCredentials
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, email); err != nil {
			s.logger.Warn("login attempt reset failed", zap.Error(err))
		}
	}

	return s.tokens.Generate(user)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.RecordFailure(ctx, email); err != nil {
		s.logger.Warn("login attempt record failed", zap.Error(err))
	}
}
