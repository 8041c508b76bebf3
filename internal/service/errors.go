package service

import "errors"

// Error taxonomy surfaced to the dispatcher. The HTTP layer maps each value
// to one status code; anything unrecognized becomes a generic internal error
// with the detail kept server-side.
var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// suspended accounts alike, so a caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden = errors.New("not allowed")

	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidOrExpiredCode is deliberately generic. The code is not
	// consumed on a failed attempt; it stays valid until expiry.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

	ErrRateLimited = errors.New("too many requests")

	ErrInsufficientFunds = errors.New("insufficient balance")

	ErrMaintenanceMode = errors.New("service is under maintenance")

	ErrRegistrationsClosed = errors.New("registrations are currently closed")

	ErrNotFound = errors.New("not found")
)
