package user

import "errors"

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	PgUniqueViolation = "23505"
)
