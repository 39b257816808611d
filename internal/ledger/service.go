package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// Service orchestrates document posting and reads
type Service struct {
	repo      Repository
	accounts  AccountLookup
	parties   PartyLookup
	committer *documentCommitter
	logger    *logger.Logger
}

// NewService creates a new ledger service
func NewService(repo Repository, accounts AccountLookup, parties PartyLookup, log *logger.Logger) *Service {
	log = log.WithField("component", "ledger")
	return &Service{
		repo:      repo,
		accounts:  accounts,
		parties:   parties,
		committer: newDocumentCommitter(repo, log),
		logger:    log,
	}
}

// SubmitDocument validates and posts a document with its ledger lines.
// It never returns a half-applied state: the result is Posted, Rejected with
// a business reason, or Failed with DatabaseMalfunction.
//
// Steps:
// 1. Validate the document name and check it is unused for the owner
// 2. Check the type and resolve its customer or vendor
// 3. Prepare each row in order; the first bad row rejects the document
// 4. Check debits equal credits for every date
// 5. Persist the document and lines atomically
func (s *Service) SubmitDocument(ctx context.Context, ownerID uuid.UUID, req SubmitRequest) Result {
	log := s.logger.WithContext(ctx).With(
		"owner_id", ownerID.String(),
		"document", req.DocumentName,
		"type", string(req.Type),
	)

	doc, err := s.prepareDocument(ctx, ownerID, req)
	if err == nil {
		// once started, persistence runs to commit or rollback
		err = s.committer.commit(context.WithoutCancel(ctx), doc)
	}

	if err != nil {
		result := classify(err)
		switch result.Status {
		case StatusRejected:
			log.Info("document rejected", "kind", string(result.Kind), "row", result.Row, "detail", result.Detail)
		default:
			log.Error("document post failed", "error", err)
		}
		return result
	}

	log.Info("document posted", "document_id", doc.ID.String(), "lines", len(doc.Lines))
	return posted(doc.ID)
}

// classify converts an internal error into a Result
func classify(err error) Result {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		return rejected(rej)
	case errors.Is(err, ErrDocumentAlreadyExists):
		return rejected(reject(KindDocumentAlreadyExists, ""))
	default:
		return failed()
	}
}

func (s *Service) prepareDocument(ctx context.Context, ownerID uuid.UUID, req SubmitRequest) (*Document, error) {
	name := strings.TrimSpace(req.DocumentName)
	if validate.IsBlank(name) {
		return nil, reject(KindBlankField, "document name")
	}
	if !validate.IsAlphanumericText(name) || len(name) > 100 {
		return nil, reject(KindInvalidDocumentName, name)
	}

	exists, err := s.repo.DocumentExists(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check document name: %w", err)
	}
	if exists {
		return nil, ErrDocumentAlreadyExists
	}

	resolver := newAccountResolver(ownerID, s.accounts, s.parties)

	doc := &Document{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      req.Type,
		IsPosted:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.resolveDocumentParty(ctx, resolver, doc, req.PartyName); err != nil {
		return nil, err
	}

	if len(req.Rows) == 0 {
		return nil, reject(KindEmptyDocument, "")
	}

	preparer := newRowPreparer(resolver)
	doc.Lines = make([]*Line, 0, len(req.Rows))
	for i, row := range req.Rows {
		line, err := preparer.prepare(ctx, i+1, row)
		if err != nil {
			return nil, err
		}
		line.OwnerID = ownerID
		line.DocumentID = doc.ID
		doc.Lines = append(doc.Lines, line)
	}

	if err := CheckDailyBalance(doc.Lines); err != nil {
		return nil, err
	}

	return doc, nil
}

// resolveDocumentParty enforces the type/party rule and sets the party id.
// A journal entry that names a party is rejected rather than ignored.
func (s *Service) resolveDocumentParty(ctx context.Context, resolver *accountResolver, doc *Document, partyName string) error {
	if !doc.Type.IsValid() {
		return reject(KindInvalidDocumentType, string(doc.Type))
	}

	partyName = strings.TrimSpace(partyName)
	kind, needsParty := doc.Type.PartyKind()

	if !needsParty {
		if partyName != "" {
			return reject(KindPartyFieldMismatch, fmt.Sprintf("%s takes no customer or vendor", doc.Type))
		}
		return nil
	}

	if partyName == "" {
		return reject(KindPartyFieldMismatch, fmt.Sprintf("%s requires a %s", doc.Type, kind))
	}

	id, found, err := resolver.resolveParty(ctx, kind, partyName)
	if err != nil {
		return err
	}
	if !found {
		return reject(KindPartyNonexistent, partyName)
	}

	if kind == party.KindCustomer {
		doc.CustomerID = &id
	} else {
		doc.VendorID = &id
	}
	return nil
}

// GetDocument retrieves one of the owner's documents with its lines
func (s *Service) GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*Document, error) {
	doc, err := s.repo.GetDocument(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments lists the owner's documents, newest first
func (s *Service) ListDocuments(ctx context.Context, ownerID uuid.UUID, filters DocumentFilters) ([]*Document, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		valid := make([]string, 0, len(AllDocumentTypes()))
		for _, t := range AllDocumentTypes() {
			valid = append(valid, string(t))
		}
		return nil, fmt.Errorf("%w %q: expected one of %s", ErrInvalidDocumentType, *filters.Type, strings.Join(valid, ", "))
	}
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.repo.ListDocuments(ctx, ownerID, filters)
}
