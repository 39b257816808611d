package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
)

// PartyRepository stores customers and vendors, one table per kind
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PostgreSQL party repository
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

func partyTable(kind party.Kind) (string, error) {
	switch kind {
	case party.KindCustomer:
		return "customers", nil
	case party.KindVendor:
		return "vendors", nil
	default:
		return "", party.ErrInvalidKind
	}
}

// Create inserts a customer or vendor; a taken name yields ErrDuplicateName
func (r *PartyRepository) Create(ctx context.Context, p *party.Party) error {
	table, err := partyTable(p.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, table)

	err = r.pool.QueryRow(ctx, query, p.ID, p.OwnerID, p.Name, p.Address).Scan(&p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, table+"_owner_name_key") {
			return party.ErrDuplicateName
		}
		return fmt.Errorf("failed to create %s: %w", p.Kind, err)
	}

	return nil
}

// GetByName retrieves an owner's party by exact name
func (r *PartyRepository) GetByName(ctx context.Context, ownerID uuid.UUID, kind party.Kind, name string) (*party.Party, error) {
	table, err := partyTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, name, address, created_at
		FROM %s
		WHERE owner_id = $1 AND name = $2
	`, table)

	p := party.Party{Kind: kind}
	err = r.pool.QueryRow(ctx, query, ownerID, name).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, party.ErrPartyNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	return &p, nil
}

// ListByOwner lists an owner's parties of one kind ordered by name
func (r *PartyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, kind party.Kind) ([]*party.Party, error) {
	table, err := partyTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, name, address, created_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY name
	`, table)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %ss: %w", kind, err)
	}
	defer rows.Close()

	parties := make([]*party.Party, 0)
	for rows.Next() {
		p := party.Party{Kind: kind}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		parties = append(parties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %ss: %w", kind, err)
	}

	return parties, nil
}
