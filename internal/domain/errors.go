package domain

import "errors"

var (
	// Validation errors, rejected before any store interaction
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSameAccount   = errors.New("debit and credit accounts must be different")
	ErrMissingField  = errors.New("required field is missing")

	// Lookup errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEntryNotFound       = errors.New("entry not found")

	// Conflict errors
	ErrAlreadyReversed = errors.New("transaction already reversed")
	// ErrTransactionConflict is surfaced when the store aborts one of two
	// concurrent writers racing for the chain head. Safe to retry from
	// scratch; retry policy belongs to the caller, never the writer.
	ErrTransactionConflict = errors.New("concurrent ledger write conflict, retry")
	ErrHashCollision       = errors.New("entry hash already exists in the chain")

	// Authentication errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
