package party

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service provides business logic for customers and vendors
type Service struct {
	repo Repository
}

// NewService creates a new party service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a customer or vendor for the owner
func (s *Service) Create(ctx context.Context, p *Party) (*Party, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)

	if err := p.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p.ID = uuid.New()

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create %s: %w", p.Kind, err)
	}

	return p, nil
}

// List retrieves all parties of a kind for an owner
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, kind Kind) ([]*Party, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	parties, err := s.repo.ListByOwner(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", kind, err)
	}

	return parties, nil
}

// FindPartyID resolves a customer or vendor name to its id. An unknown name
// is reported through found, not err.
func (s *Service) FindPartyID(ctx context.Context, ownerID uuid.UUID, kind Kind, name string) (uuid.UUID, bool, error) {
	p, err := s.repo.GetByName(ctx, ownerID, kind, name)
	if err != nil {
		if errors.Is(err, ErrPartyNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return p.ID, true, nil
}
