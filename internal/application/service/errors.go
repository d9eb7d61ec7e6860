package service

import "errors"

// Reportable failure modes of the budgeting core. Precondition violations
// are explicit errors, never silent no-ops, so callers can react.
var (
	ErrNoActiveSession     = errors.New("no active session")
	ErrInvalidInput        = errors.New("invalid input")
	ErrTransactionNotFound = errors.New("transaction not found")
)
