package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// Service provides business logic for the chart of accounts
type Service struct {
	repo   Repository
	cache  ListCache
	logger *logger.Logger
}

// NewService creates a new account service. cache may be nil.
func NewService(repo Repository, cache ListCache, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: log.WithField("component", "account"),
	}
}

// Create adds an account to the owner's chart
func (s *Service) Create(ctx context.Context, a *Account) (*Account, error) {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)

	if err := a.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	a.ID = uuid.New()

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.invalidate(ctx, a.OwnerID)

	return a, nil
}

// List returns the owner's accounts, served from the cache when warm
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetAccounts(ctx, ownerID)
		if err != nil {
			s.logger.WithContext(ctx).Warn("account cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	accounts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetAccounts(ctx, ownerID, accounts); err != nil {
			s.logger.WithContext(ctx).Warn("account cache write failed", "error", err)
		}
	}

	return accounts, nil
}

// BeginDocumentSession drops any cached account list for the owner and
// returns a freshly loaded one. Called each time a document-addition
// session starts so dropdowns never show a stale chart.
func (s *Service) BeginDocumentSession(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	s.invalidate(ctx, ownerID)

	accounts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetAccounts(ctx, ownerID, accounts); err != nil {
			s.logger.WithContext(ctx).Warn("account cache write failed", "error", err)
		}
	}

	return accounts, nil
}

// FindAccountID resolves a code to an account id. An unknown code is
// reported through found, not err.
func (s *Service) FindAccountID(ctx context.Context, ownerID uuid.UUID, code string) (uuid.UUID, bool, error) {
	a, err := s.repo.GetByCode(ctx, ownerID, code)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return a.ID, true, nil
}

func (s *Service) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.WithContext(ctx).Warn("account cache invalidation failed", "error", err)
	}
}
