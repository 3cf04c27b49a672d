package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrConflict           = errors.New("username or email already registered")
	ErrInactive           = errors.New("account not activated")
	ErrProtected          = errors.New("admin accounts cannot be modified")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
