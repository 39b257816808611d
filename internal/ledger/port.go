package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
)

// Repository defines the interface for document persistence operations
type Repository interface {
	// Document operations
	DocumentExists(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context, ownerID uuid.UUID, filters DocumentFilters) ([]*Document, error)

	// Write path used by the committer. InsertDocument returns
	// ErrDocumentAlreadyExists on a (owner, name) conflict.
	InsertDocument(ctx context.Context, doc *Document) (uuid.UUID, error)
	InsertLines(ctx context.Context, lines []*Line) (int64, error)
	CountLines(ctx context.Context, documentID uuid.UUID) (int64, error)
	DeleteLines(ctx context.Context, documentID uuid.UUID) error
	DeleteDocument(ctx context.Context, documentID uuid.UUID) error

	// Transaction management
	BeginTx(ctx context.Context) (context.Context, error)
	CommitTx(ctx context.Context) error
	RollbackTx(ctx context.Context) error
}

// AccountLookup resolves an owner's account code. found is false when the
// owner has no such account; err is reserved for storage faults.
type AccountLookup interface {
	FindAccountID(ctx context.Context, ownerID uuid.UUID, code string) (id uuid.UUID, found bool, err error)
}

// PartyLookup resolves an owner's customer or vendor by name
type PartyLookup interface {
	FindPartyID(ctx context.Context, ownerID uuid.UUID, kind party.Kind, name string) (id uuid.UUID, found bool, err error)
}
