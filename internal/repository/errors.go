package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the persistence backend fails
	ErrUnavailable = errors.New("user store unavailable")
)
