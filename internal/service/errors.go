// Package service contains the identity workflows that coordinate the
// stores with the mailer and the token issuer
package service

import "errors"

// Workflow outcomes the handlers translate into responses. Lookup and
// credential failures stop here, they never bubble up as generic 500s.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so responses don't leak which one it was.
	ErrInvalidCredentials = errors.New("bad credentials")

	// ErrAccountNotActivated means the credentials were right but no
	// confirmation was ever consumed for the account.
	ErrAccountNotActivated = errors.New("account not activated")

	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")

	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")

	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenExpired     = errors.New("token expired")
	ErrAlreadyConfirmed = errors.New("account already confirmed")

	// ErrInactiveAccount rejects a password reset request for an account
	// that never confirmed its email.
	ErrInactiveAccount = errors.New("account not active")

	ErrIncorrectOldPassword = errors.New("old password does not match")

	// ErrDelivery marks an upstream mail failure. Registration rolls back
	// on it; resend and reset surface it but keep their token.
	ErrDelivery = errors.New("email delivery failed")
)
