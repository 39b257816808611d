package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// RawRow is one user-entered ledger row before validation
type RawRow struct {
	Code        string `json:"code"`
	Date        string `json:"date"`
	CreDebit    Side   `json:"credebit"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// SubmitRequest is the payload of a document submission
type SubmitRequest struct {
	DocumentName string       `json:"document_name"`
	Type         DocumentType `json:"type"`
	PartyName    string       `json:"party_name,omitempty"`
	Rows         []RawRow     `json:"rows"`
}

// Status is the terminal state of a submission
type Status string

const (
	StatusPosted   Status = "posted"
	StatusRejected Status = "rejected"
	StatusFailed   Status = "failed"
)

// RejectionKind names why a submission did not post
type RejectionKind string

const (
	KindDocumentAlreadyExists RejectionKind = "DocumentAlreadyExists"
	KindPartyFieldMismatch    RejectionKind = "PartyFieldMismatch"
	KindPartyNonexistent      RejectionKind = "PartyNonexistent"
	KindInvalidDocumentType   RejectionKind = "InvalidDocumentType"
	KindInvalidDocumentName   RejectionKind = "InvalidDocumentName"
	KindEmptyDocument         RejectionKind = "EmptyDocument"
	KindBlankField            RejectionKind = "BlankField"
	KindNonNumericCode        RejectionKind = "NonNumericCode"
	KindUnknownAccount        RejectionKind = "UnknownAccount"
	KindInvalidDate           RejectionKind = "InvalidDate"
	KindInvalidAmount         RejectionKind = "InvalidAmount"
	KindInvalidDescription    RejectionKind = "InvalidDescription"
	KindInvalidEntrySide      RejectionKind = "InvalidEntrySide"
	KindDailyImbalance        RejectionKind = "DailyImbalance"
	KindDatabaseMalfunction   RejectionKind = "DatabaseMalfunction"
)

var kindMessages = map[RejectionKind]string{
	KindDocumentAlreadyExists: "A document with this name already exists.",
	KindPartyFieldMismatch:    "The customer/vendor field does not match the document type.",
	KindPartyNonexistent:      "The customer or vendor does not exist.",
	KindInvalidDocumentType:   "Please choose a valid document type.",
	KindInvalidDocumentName:   "Document names may only contain letters, numbers, spaces and - _ , : ;",
	KindEmptyDocument:         "A document needs at least one ledger row.",
	KindBlankField:            "Please fill in every field.",
	KindNonNumericCode:        "Account codes must be numeric.",
	KindUnknownAccount:        "That account code does not exist.",
	KindInvalidDate:           "Dates must be valid and written as YYYY-MM-DD.",
	KindInvalidAmount:         "Amounts must be positive numbers with at most two decimal places.",
	KindInvalidDescription:    "Descriptions may only contain letters, numbers, spaces and - _ , : ;",
	KindInvalidEntrySide:      "Each row must be either a debit or a credit.",
	KindDailyImbalance:        "Debits and credits must balance for each date.",
	KindDatabaseMalfunction:   "Something went wrong saving the document. Nothing was saved.",
}

// Message returns the human-readable message for the kind
func (k RejectionKind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return string(k)
}

// RejectionError is a business rejection raised while preparing a document.
// Row is 1-based; zero means the rejection is not tied to a row.
type RejectionError struct {
	Kind   RejectionKind
	Row    int
	Detail string
}

func (e *RejectionError) Error() string {
	msg := string(e.Kind)
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func reject(kind RejectionKind, detail string) *RejectionError {
	return &RejectionError{Kind: kind, Detail: detail}
}

// Result is the discriminated outcome of SubmitDocument
type Result struct {
	Status     Status        `json:"status"`
	DocumentID *uuid.UUID    `json:"document_id,omitempty"`
	Kind       RejectionKind `json:"kind,omitempty"`
	Message    string        `json:"message,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	Row        int           `json:"row,omitempty"`
}

// IsPosted reports whether the document was persisted
func (r Result) IsPosted() bool {
	return r.Status == StatusPosted
}

func posted(id uuid.UUID) Result {
	return Result{Status: StatusPosted, DocumentID: &id}
}

func rejected(e *RejectionError) Result {
	return Result{
		Status:  StatusRejected,
		Kind:    e.Kind,
		Message: e.Kind.Message(),
		Detail:  e.Detail,
		Row:     e.Row,
	}
}

func failed() Result {
	return Result{
		Status:  StatusFailed,
		Kind:    KindDatabaseMalfunction,
		Message: KindDatabaseMalfunction.Message(),
	}
}
