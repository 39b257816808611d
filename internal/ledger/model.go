package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
)

// DocumentType represents the kind of bookkeeping document
type DocumentType string

const (
	DocumentTypeJournalEntry   DocumentType = "JE"
	DocumentTypeAPInvoice      DocumentType = "API"
	DocumentTypeAPDisbursement DocumentType = "APD"
	DocumentTypeARInvoice      DocumentType = "ARI"
	DocumentTypeARReceipt      DocumentType = "ARR"
)

// partyRule describes which party, if any, a document type carries
type partyRule struct {
	kind  party.Kind
	label string
}

// partyRules is keyed by every valid document type. An empty kind means the
// type takes no party.
var partyRules = map[DocumentType]partyRule{
	DocumentTypeJournalEntry:   {label: "Journal Entry"},
	DocumentTypeAPInvoice:      {kind: party.KindVendor, label: "AP Invoice"},
	DocumentTypeAPDisbursement: {kind: party.KindVendor, label: "AP Disbursement"},
	DocumentTypeARInvoice:      {kind: party.KindCustomer, label: "AR Invoice"},
	DocumentTypeARReceipt:      {kind: party.KindCustomer, label: "AR Receipt"},
}

// IsValid checks if the document type is valid
func (t DocumentType) IsValid() bool {
	_, ok := partyRules[t]
	return ok
}

// Label returns a human-readable label for the document type
func (t DocumentType) Label() string {
	if r, ok := partyRules[t]; ok {
		return r.label
	}
	return string(t)
}

// PartyKind returns the kind of party the type requires. ok is false for
// types that take no party.
func (t DocumentType) PartyKind() (kind party.Kind, ok bool) {
	r := partyRules[t]
	return r.kind, r.kind != ""
}

// AllDocumentTypes returns all valid document types
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeJournalEntry,
		DocumentTypeAPInvoice,
		DocumentTypeAPDisbursement,
		DocumentTypeARInvoice,
		DocumentTypeARReceipt,
	}
}

// Side is the debit/credit flag of a raw row
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// IsValid checks if the side is debit or credit
func (s Side) IsValid() bool {
	return s == SideDebit || s == SideCredit
}

// Document is a named bookkeeping transaction owning its ledger lines
type Document struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	CustomerID *uuid.UUID   `json:"customer_id,omitempty"`
	VendorID   *uuid.UUID   `json:"vendor_id,omitempty"`
	IsPosted   bool         `json:"is_posted"`
	CreatedAt  time.Time    `json:"created_at"`

	Lines []*Line `json:"lines,omitempty"`
}

// Validate checks the document header and every line against the storage
// invariants. Business rejections are produced earlier by the preparer.
func (d *Document) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidDocumentType
	}

	kind, needsParty := d.Type.PartyKind()
	switch {
	case !needsParty && (d.CustomerID != nil || d.VendorID != nil):
		return ErrPartyNotAllowed
	case kind == party.KindCustomer && (d.CustomerID == nil || d.VendorID != nil):
		return ErrPartyRequired
	case kind == party.KindVendor && (d.VendorID == nil || d.CustomerID != nil):
		return ErrPartyRequired
	}

	if len(d.Lines) == 0 {
		return ErrDocumentHasNoLines
	}
	for _, l := range d.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Line is one general ledger posting
type Line struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	DocumentID  uuid.UUID        `json:"document_id"`
	AccountID   uuid.UUID        `json:"account_id"`
	LineNo      int              `json:"line_no"`
	LineDate    time.Time        `json:"line_date"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	Description string           `json:"description"`

	// Populated on read
	AccountCode string `json:"account_code,omitempty"`
	AccountName string `json:"account_name,omitempty"`
}

// Validate checks that exactly one side is set and is non-negative
func (l *Line) Validate() error {
	if l.AccountID == uuid.Nil {
		return ErrMissingAccount
	}
	if l.LineDate.IsZero() {
		return ErrMissingLineDate
	}
	if (l.Debit == nil) == (l.Credit == nil) {
		return ErrInvalidSide
	}
	if l.Debit != nil && l.Debit.IsNegative() {
		return ErrNegativeAmount
	}
	if l.Credit != nil && l.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// IsDebit returns true if the line is a debit
func (l *Line) IsDebit() bool {
	return l.Debit != nil
}

// Amount returns whichever side is set
func (l *Line) Amount() decimal.Decimal {
	if l.Debit != nil {
		return *l.Debit
	}
	if l.Credit != nil {
		return *l.Credit
	}
	return decimal.Zero
}

// DocumentFilters defines filters for listing documents
type DocumentFilters struct {
	Type   *DocumentType
	Limit  int
	Offset int
}
