package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested item does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrInvalidHash indicates a blurhash string could not be decoded
	ErrInvalidHash = errors.New("invalid blurhash")

	// ErrNotConfigured indicates no server has been set up yet
	ErrNotConfigured = errors.New("server is not configured")
)
