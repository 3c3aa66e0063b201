// Package store wraps all database access behind small repositories so the
// workflows above it can be exercised against an in-memory database.
package store

import "errors"

var (
	// ErrNotFound is returned by every lookup that matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken and ErrEmailTaken surface unique constraint
	// violations. The pre-insert existence checks in the handlers are an
	// optimization only, these are the authoritative answer under
	// concurrent registrations.
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrAlreadyConfirmed is returned when a confirmation token is
	// consumed a second time.
	ErrAlreadyConfirmed = errors.New("confirmation already consumed")
)
