package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// Service handles registration and login
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new user service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log.WithField("component", "user"),
	}
}

// Register creates a new user with a hashed password
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	now := time.Now()
	u := &User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	// Uniqueness is enforced by the users_username_key constraint
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Login authenticates a user with username and password
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Don't reveal that the user doesn't exist
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}

	u.UpdateLastLogin()
	if err := s.repo.UpdateLastLogin(ctx, u); err != nil {
		// non-critical
		s.logger.WithContext(ctx).Warn("failed to update last login", "user_id", u.ID, "error", err)
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
