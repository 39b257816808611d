package account

import "errors"

var (
	// Validation errors
	ErrInvalidOwnerID = errors.New("invalid owner ID")
	ErrMissingCode    = errors.New("account code is required")
	ErrNonNumericCode = errors.New("account code must be numeric")
	ErrCodeTooLong    = errors.New("account code exceeds 16 digits")
	ErrMissingName    = errors.New("account name is required")
	ErrInvalidName    = errors.New("account name may only contain letters, digits, spaces and - _ , : ;")
	ErrNameTooLong    = errors.New("account name exceeds 100 characters")
	ErrInvalidType    = errors.New("invalid account type")
	ErrDuplicateCode  = errors.New("account code already exists for this owner")

	// Repository errors
	ErrAccountNotFound = errors.New("account not found")
)
