package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kislikjeka/bookkeeper/internal/platform/account"
)

// AccountRepository implements the account repository interface using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts an account; a taken code for the owner yields ErrDuplicateCode
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (id, owner_id, code, name, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, a.ID, a.OwnerID, a.Code, a.Name, string(a.Type)).Scan(&a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "accounts_owner_code_key") {
			return account.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByCode retrieves an owner's account by code
func (r *AccountRepository) GetByCode(ctx context.Context, ownerID uuid.UUID, code string) (*account.Account, error) {
	query := `
		SELECT id, owner_id, code, name, type, created_at
		FROM accounts
		WHERE owner_id = $1 AND code = $2
	`

	var a account.Account
	err := r.pool.QueryRow(ctx, query, ownerID, code).Scan(
		&a.ID,
		&a.OwnerID,
		&a.Code,
		&a.Name,
		&a.Type,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &a, nil
}

// ListByOwner lists an owner's accounts ordered by code
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	query := `
		SELECT id, owner_id, code, name, type, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY length(code), code
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Code, &a.Name, &a.Type, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}
