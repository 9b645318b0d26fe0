package service

import "errors"

// Expected authentication flow failures. The handler translates each into a
// short static message; underlying detail stays in logs and audit events.
var (
	// ErrMissingCode is returned when the callback carries no authorization code
	ErrMissingCode = errors.New("authorization code is missing")

	// ErrAuthFailed is returned when Discord rejects the exchange or profile fetch
	ErrAuthFailed = errors.New("failed to authenticate with discord")
)
