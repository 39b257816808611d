package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kislikjeka/bookkeeper/internal/ledger"
	"github.com/kislikjeka/bookkeeper/pkg/money"
)

const documentNameConstraint = "documents_owner_name_key"

// LedgerRepository implements the ledger repository interface using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Document operations

// DocumentExists checks whether the owner already has a document with this name
func (r *LedgerRepository) DocumentExists(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM documents WHERE owner_id = $1 AND name = $2)`

	var exists bool
	if err := r.getQueryer(ctx).QueryRow(ctx, query, ownerID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}

	return exists, nil
}

// InsertDocument inserts the document header and reads back its id
func (r *LedgerRepository) InsertDocument(ctx context.Context, doc *ledger.Document) (uuid.UUID, error) {
	query := `
		INSERT INTO documents (id, owner_id, name, type, customer_id, vendor_id, is_posted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err := r.getQueryer(ctx).QueryRow(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Name,
		string(doc.Type),
		doc.CustomerID,
		doc.VendorID,
		doc.IsPosted,
		doc.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, documentNameConstraint) {
			return uuid.Nil, ledger.ErrDocumentAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// InsertLines inserts all lines in one batch and returns the number of rows written
func (r *LedgerRepository) InsertLines(ctx context.Context, lines []*ledger.Line) (int64, error) {
	query := `
		INSERT INTO general_ledger (id, owner_id, document_id, account_id, line_no, line_date, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9)
	`

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.ID,
			l.OwnerID,
			l.DocumentID,
			l.AccountID,
			l.LineNo,
			l.LineDate,
			money.FormatPtr(l.Debit), // NUMERIC via text keeps the value exact
			money.FormatPtr(l.Credit),
			l.Description,
		)
	}

	results := r.getQueryer(ctx).SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for i := range lines {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert line %d: %w", i+1, err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// CountLines counts the stored lines of a document
func (r *LedgerRepository) CountLines(ctx context.Context, documentID uuid.UUID) (int64, error) {
	query := `SELECT count(*) FROM general_ledger WHERE document_id = $1`

	var n int64
	if err := r.getQueryer(ctx).QueryRow(ctx, query, documentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count lines: %w", err)
	}

	return n, nil
}

// DeleteLines removes every line of a document
func (r *LedgerRepository) DeleteLines(ctx context.Context, documentID uuid.UUID) error {
	if _, err := r.getQueryer(ctx).Exec(ctx, `DELETE FROM general_ledger WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("failed to delete lines: %w", err)
	}
	return nil
}

// DeleteDocument removes a document header
func (r *LedgerRepository) DeleteDocument(ctx context.Context, documentID uuid.UUID) error {
	if _, err := r.getQueryer(ctx).Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// GetDocument retrieves an owner's document with its lines.
// Documents of other owners are reported as not found.
func (r *LedgerRepository) GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Document, error) {
	query := `
		SELECT id, owner_id, name, type, customer_id, vendor_id, is_posted, created_at
		FROM documents
		WHERE id = $1 AND owner_id = $2
	`

	doc, err := scanDocument(r.getQueryer(ctx).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	lines, err := r.getLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	return doc, nil
}

// ListDocuments lists an owner's documents, newest first, without lines
func (r *LedgerRepository) ListDocuments(ctx context.Context, ownerID uuid.UUID, filters ledger.DocumentFilters) ([]*ledger.Document, error) {
	query := `
		SELECT id, owner_id, name, type, customer_id, vendor_id, is_posted, created_at
		FROM documents
		WHERE owner_id = $1
	`

	args := []interface{}{ownerID}
	argPos := 2

	if filters.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argPos)
		args = append(args, string(*filters.Type))
		argPos++
	}

	query += " ORDER BY created_at DESC, name"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
		argPos++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filters.Offset)
	}

	rows, err := r.getQueryer(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	documents := make([]*ledger.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return documents, nil
}

func (r *LedgerRepository) getLines(ctx context.Context, documentID uuid.UUID) ([]*ledger.Line, error) {
	query := `
		SELECT gl.id, gl.owner_id, gl.document_id, gl.account_id, a.code, a.name,
		       gl.line_no, gl.line_date, gl.debit::text, gl.credit::text, gl.description
		FROM general_ledger gl
		JOIN accounts a ON a.id = gl.account_id
		WHERE gl.document_id = $1
		ORDER BY gl.line_no
	`

	rows, err := r.getQueryer(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	lines := make([]*ledger.Line, 0)
	for rows.Next() {
		var l ledger.Line
		var debit, credit *string

		if err := rows.Scan(
			&l.ID,
			&l.OwnerID,
			&l.DocumentID,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.LineNo,
			&l.LineDate,
			&debit,
			&credit,
			&l.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}

		if l.Debit, err = parseAmount(debit); err != nil {
			return nil, err
		}
		if l.Credit, err = parseAmount(credit); err != nil {
			return nil, err
		}

		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines: %w", err)
	}

	return lines, nil
}

func scanDocument(row pgx.Row) (*ledger.Document, error) {
	var doc ledger.Document
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Name,
		&doc.Type,
		&doc.CustomerID,
		&doc.VendorID,
		&doc.IsPosted,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func parseAmount(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", *s, err)
	}
	return &d, nil
}

// Transaction management
// Transactions are stored in context using txContextKey

type ctxKey string

const txContextKey ctxKey = "ledger_tx"

// BeginTx starts a new database transaction and stores it in the context
func (r *LedgerRepository) BeginTx(ctx context.Context) (context.Context, error) {
	if tx := r.getTxFromContext(ctx); tx != nil {
		return ctx, fmt.Errorf("transaction already in progress")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ctx, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return context.WithValue(ctx, txContextKey, tx), nil
}

// CommitTx commits the database transaction from the context
func (r *LedgerRepository) CommitTx(ctx context.Context) error {
	tx := r.getTxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("no transaction in context")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RollbackTx rolls back the database transaction from the context
func (r *LedgerRepository) RollbackTx(ctx context.Context) error {
	tx := r.getTxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("no transaction in context")
	}

	if err := tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return nil
		}
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func (r *LedgerRepository) getTxFromContext(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txContextKey).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx
type queryer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// getQueryer returns the transaction if one exists in context, otherwise the pool
func (r *LedgerRepository) getQueryer(ctx context.Context) queryer {
	if tx := r.getTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}
