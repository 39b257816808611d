package ledger

import "errors"

// Document errors
var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentAlreadyExists = errors.New("document name already exists for this owner")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrPartyNotAllowed       = errors.New("document type does not take a party")
	ErrPartyRequired         = errors.New("document type requires a party")
	ErrDocumentHasNoLines    = errors.New("document has no lines")
)

// Line errors
var (
	ErrInvalidSide     = errors.New("line must carry exactly one of debit or credit")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrMissingAccount  = errors.New("line has no account")
	ErrMissingLineDate = errors.New("line has no date")
)

// ErrDatabaseMalfunction is returned when a post could not be persisted
// completely and was rolled back.
var ErrDatabaseMalfunction = errors.New("database malfunction: document was not saved")
