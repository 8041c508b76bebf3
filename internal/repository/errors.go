package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an account creation collides with
	// an existing email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInsufficientFunds is returned when a debit would drive the balance
	// negative. The conditional decrement guarantees the check and the
	// write are one atomic step.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrAlreadyCompleted is returned when a pickup credit is applied to a
	// pickup that has already been completed. Callers rely on it to keep
	// the credit idempotent per pickup.
	ErrAlreadyCompleted = errors.New("pickup already completed")

	// ErrNotPending is returned when a redemption status change targets a
	// redemption that is no longer pending.
	ErrNotPending = errors.New("redemption is not pending")
)
