package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// Type classifies an account in the chart of accounts
type Type string

const (
	TypeAsset     Type = "ASSET"
	TypeLiability Type = "LIABILITY"
	TypeEquity    Type = "EQUITY"
	TypeRevenue   Type = "REVENUE"
	TypeExpense   Type = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense:
		return true
	}
	return false
}

// AllTypes returns every account type in chart order
func AllTypes() []Type {
	return []Type{TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense}
}

// Account is one entry of an owner's chart of accounts
type Account struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateCreate validates account fields for creation
func (a *Account) ValidateCreate() error {
	if a.OwnerID == uuid.Nil {
		return ErrInvalidOwnerID
	}

	if validate.IsBlank(a.Code) {
		return ErrMissingCode
	}
	if !validate.IsNumeric(a.Code) {
		return ErrNonNumericCode
	}
	if len(a.Code) > 16 {
		return ErrCodeTooLong
	}

	if validate.IsBlank(a.Name) {
		return ErrMissingName
	}
	if !validate.IsAlphanumericText(a.Name) {
		return ErrInvalidName
	}
	if len(a.Name) > 100 {
		return ErrNameTooLong
	}

	if !a.Type.IsValid() {
		return ErrInvalidType
	}

	return nil
}
