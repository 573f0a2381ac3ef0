package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that account was not found in storage
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates that account with this username already exists
	ErrAccountExists = errors.New("account already exists")

	// ErrItemNotFound indicates that item does not exist or belongs to another account
	ErrItemNotFound = errors.New("item not found")
)
