package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// documentCommitter persists a prepared document and its lines in one
// database transaction, verifying the stored line count before commit.
type documentCommitter struct {
	repo   Repository
	logger *logger.Logger
}

func newDocumentCommitter(repo Repository, log *logger.Logger) *documentCommitter {
	return &documentCommitter{repo: repo, logger: log}
}

func (c *documentCommitter) commit(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseMalfunction, err)
	}

	txCtx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrDatabaseMalfunction, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = c.repo.RollbackTx(txCtx)
		}
	}()

	id, err := c.repo.InsertDocument(txCtx, doc)
	if err != nil {
		if errors.Is(err, ErrDocumentAlreadyExists) {
			return err
		}
		return fmt.Errorf("%w: failed to insert document: %v", ErrDatabaseMalfunction, err)
	}
	doc.ID = id
	for _, l := range doc.Lines {
		l.DocumentID = id
	}

	inserted, err := c.repo.InsertLines(txCtx, doc.Lines)
	if err != nil {
		return fmt.Errorf("%w: failed to insert lines: %v", ErrDatabaseMalfunction, err)
	}

	stored, err := c.repo.CountLines(txCtx, id)
	if err != nil {
		return fmt.Errorf("%w: failed to verify lines: %v", ErrDatabaseMalfunction, err)
	}

	want := int64(len(doc.Lines))
	if inserted != want || stored != want {
		c.compensate(txCtx, doc)
		return fmt.Errorf("%w: inserted %d of %d lines, %d stored", ErrDatabaseMalfunction, inserted, want, stored)
	}

	if err := c.repo.CommitTx(txCtx); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrDatabaseMalfunction, err)
	}

	committed = true
	return nil
}

// compensate deletes the lines and the document written so far.
// The caller rolls back afterwards.
func (c *documentCommitter) compensate(ctx context.Context, doc *Document) {
	log := c.logger.WithContext(ctx).With("document_id", doc.ID.String())
	if err := c.repo.DeleteLines(ctx, doc.ID); err != nil {
		log.Error("compensation failed to delete lines", "error", err)
	}
	if err := c.repo.DeleteDocument(ctx, doc.ID); err != nil {
		log.Error("compensation failed to delete document", "error", err)
	}
}
