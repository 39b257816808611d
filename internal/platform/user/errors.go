package user

import "errors"

// User validation errors
var (
	ErrInvalidUsername     = errors.New("username must be 3-64 letters, digits, '.', '-' or '_'")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidPasswordHash = errors.New("invalid password hash")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user with this username already exists")
)
