package services

import "errors"

// Error kinds surfaced by the service layer. Handlers map these to HTTP
// status codes with errors.Is; anything unwrapped is treated as internal.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrLocked       = errors.New("account temporarily locked")
)
