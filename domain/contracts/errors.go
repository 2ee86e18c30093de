package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrSessionNotFound occurs when a session id has no stored session
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired occurs when a stored session is past its expiry
	ErrSessionExpired = errors.New("session expired")

	// ErrNoSession occurs when a request context carries no session id
	ErrNoSession = errors.New("no session in context")

	// ErrRowNotFound occurs when a selection targets a row that is not on the current page
	ErrRowNotFound = errors.New("row not on current page")
)
