package discord

import "errors"

// Common Discord client errors
var (
	// ErrUpstream is returned when Discord rejects a request or is unreachable
	ErrUpstream = errors.New("discord request failed")

	// ErrNotGuildMember is returned when the member lookup reports "not found".
	// This is a business rejection, not a transient failure, and is never retried.
	ErrNotGuildMember = errors.New("user is not a member of the required guild")
)
