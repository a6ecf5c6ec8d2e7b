package domain

import "errors"

// Failure kinds surfaced by the auth core and the record services. Controllers
// translate these to HTTP statuses; nothing else in the stack panics or
// retries on them.
var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrCredentialExists     = errors.New("credential already registered")
	ErrChallengeExpired     = errors.New("challenge expired or already used")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAlreadyRegistered    = errors.New("phone already registered")
)
