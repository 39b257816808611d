package party

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for customer and vendor data access
type Repository interface {
	// Create stores a new party; returns ErrDuplicateName on (owner, kind, name) conflict
	Create(ctx context.Context, party *Party) error

	// GetByName returns ErrPartyNotFound when the owner has no such party
	GetByName(ctx context.Context, ownerID uuid.UUID, kind Kind, name string) (*Party, error)

	// ListByOwner returns the owner's parties of one kind ordered by name
	ListByOwner(ctx context.Context, ownerID uuid.UUID, kind Kind) ([]*Party, error)
}
