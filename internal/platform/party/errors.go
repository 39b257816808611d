package party

import "errors"

var (
	ErrInvalidOwnerID = errors.New("invalid owner ID")
	ErrInvalidKind    = errors.New("party kind must be customer or vendor")
	ErrMissingName    = errors.New("name is required")
	ErrInvalidName    = errors.New("name may only contain letters, digits, spaces and - _ , : ;")
	ErrNameTooLong    = errors.New("name exceeds 100 characters")
	ErrInvalidAddress = errors.New("address may only contain letters, digits, spaces and - _ , : ;")
	ErrAddressTooLong = errors.New("address exceeds 255 characters")
	ErrDuplicateName  = errors.New("name already exists for this owner")
	ErrPartyNotFound  = errors.New("party not found")
)
