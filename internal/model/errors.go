package model

import "errors"

// Domain error kinds. Handlers map these to HTTP status codes with
// errors.Is; services wrap them with context via fmt.Errorf and %w.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// Token verification failures. Both are unauthorized for access
	// control; they are kept distinct so clients get a clearer message.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)
