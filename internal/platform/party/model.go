package party

import (
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// Kind distinguishes customers from vendors. Names are unique per owner
// within a kind, so a customer and a vendor may share a name.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
)

// IsValid checks if the party kind is valid
func (k Kind) IsValid() bool {
	return k == KindCustomer || k == KindVendor
}

// Party is a customer or a vendor
type Party struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateCreate validates party fields for creation. The address is optional.
func (p *Party) ValidateCreate() error {
	if p.OwnerID == uuid.Nil {
		return ErrInvalidOwnerID
	}
	if !p.Kind.IsValid() {
		return ErrInvalidKind
	}

	if validate.IsBlank(p.Name) {
		return ErrMissingName
	}
	if !validate.IsAlphanumericText(p.Name) {
		return ErrInvalidName
	}
	if len(p.Name) > 100 {
		return ErrNameTooLong
	}

	if !validate.IsBlank(p.Address) && !validate.IsAlphanumericText(p.Address) {
		return ErrInvalidAddress
	}
	if len(p.Address) > 255 {
		return ErrAddressTooLong
	}

	return nil
}
