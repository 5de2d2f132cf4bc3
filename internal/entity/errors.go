package entity

import "errors"

// Tagged failure kinds. Use cases wrap these with context via fmt.Errorf
// and %w; handlers map them to status codes with errors.Is, so a client
// mistake never surfaces as a server error and vice versa.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrIntegrity          = errors.New("constraint violation")
	ErrExternalService    = errors.New("external service failure")
)
