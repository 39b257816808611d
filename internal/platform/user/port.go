package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// UpdateLastLogin stores the last login timestamp
	UpdateLastLogin(ctx context.Context, user *User) error
}
