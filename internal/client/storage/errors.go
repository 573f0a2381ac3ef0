package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrStateNotFound indicates that the local state document was never saved
	ErrStateNotFound = errors.New("state not found")

	// ErrStateCorrupted indicates that the stored state document is not valid JSON
	ErrStateCorrupted = errors.New("state document corrupted")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
