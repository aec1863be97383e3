package exhibitors

import "errors"

// Typed failures for state-machine operations. Handlers map these to HTTP
// status codes; everything else is treated as an internal failure.
var (
	// ErrValidation marks malformed or out-of-range caller input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a payment-gated or role-gated action the actor may
	// not perform.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a missing exhibitor record.
	ErrNotFound = errors.New("exhibitor not found")
	// ErrDuplicateEmail marks a create with an email already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
