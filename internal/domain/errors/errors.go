package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrOrderInvalid        = errors.New("order invalid")
	ErrInvalidHostname     = errors.New("invalid hostname")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrZoneIDMissing rejects a cloudflare-mode domain write without a zone ID.
	ErrZoneIDMissing = errors.New("cloudflare zone id required for cloudflare nameserver mode")
	// ErrZoneIDMismatch reports that the stored zone ID differs from the requested one.
	ErrZoneIDMismatch = errors.New("stored cloudflare zone id differs from requested")
)
