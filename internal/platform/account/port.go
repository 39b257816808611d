package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account data access.
// Every method is scoped to a single owner.
type Repository interface {
	// Create stores a new account; returns ErrDuplicateCode on (owner, code) conflict
	Create(ctx context.Context, account *Account) error

	// GetByCode returns ErrAccountNotFound when the owner has no such code
	GetByCode(ctx context.Context, ownerID uuid.UUID, code string) (*Account, error)

	// ListByOwner returns the owner's chart of accounts ordered by code
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
}

// ListCache caches an owner's account list for dropdown population.
// It is advisory: misses and errors fall through to the repository.
type ListCache interface {
	GetAccounts(ctx context.Context, ownerID uuid.UUID) ([]*Account, bool, error)
	SetAccounts(ctx context.Context, ownerID uuid.UUID, accounts []*Account) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
