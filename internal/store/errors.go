package store

import "errors"

var (
	// ErrDuplicateUsername reports a registration race loser or a plain
	// retry with a taken name. Detection is by unique-constraint
	// violation on insert, never by a pre-check.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so the two are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
