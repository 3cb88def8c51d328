package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Prompt completion errors
	ErrAlreadyCompleted = errors.New("prompt already completed today")

	// Date errors
	ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")

	// Entry errors
	ErrEmptyContent  = errors.New("entry content is empty")
	ErrEntryNotFound = errors.New("entry not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
