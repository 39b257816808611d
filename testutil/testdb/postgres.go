// Package testdb starts a throwaway Postgres for integration tests and
// loads the bookkeeper schema into it.
package testdb

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kislikjeka/bookkeeper/migrations"
)

// dataTables lists every table holding per-owner data, children first
var dataTables = []string{
	"general_ledger",
	"documents",
	"customers",
	"vendors",
	"accounts",
	"users",
}

// TestDB represents a test database instance
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// NewTestDB starts a Postgres container and applies the embedded schema
func NewTestDB(ctx context.Context) (*TestDB, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bookkeeper_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	db := &TestDB{Container: container}
	if err := db.connect(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	if err := db.loadSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}

	return db, nil
}

func (db *TestDB) connect(ctx context.Context) error {
	connStr, err := db.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	db.Pool = pool
	db.ConnStr = connStr

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// loadSchema runs the *.up.sql migrations in file order
func (db *TestDB) loadSchema(ctx context.Context) error {
	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		body, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}
	}
	return nil
}

// Reset empties every data table
func (db *TestDB) Reset(ctx context.Context) error {
	stmt := "TRUNCATE TABLE " + strings.Join(dataTables, ", ") + " CASCADE"
	if _, err := db.Pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	return nil
}

// CreateOwner inserts a user row and returns its id
func (db *TestDB) CreateOwner(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, id, "owner-"+id.String()[:8], "hash")
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create owner: %w", err)
	}
	return id, nil
}

// CountRows returns the number of rows in table
func (db *TestDB) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n)
	return n, err
}

// Close closes the connection pool and terminates the container
func (db *TestDB) Close(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}
