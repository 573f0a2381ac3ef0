// Package backend holds the two interchangeable persistence adapters of the
// client: Remote talks to the item API, Local keeps everything in a bbolt file.
package backend

import (
	"context"
	"errors"

	"github.com/iudanet/stockkeeper/internal/client/view"
	"github.com/iudanet/stockkeeper/internal/models"
)

//go:generate moq -out backend_mock.go . Backend

var (
	// ErrInvalidItem indicates a missing or empty item name
	ErrInvalidItem = errors.New("item name is required")
	// ErrItemNotFound indicates that the item does not exist
	ErrItemNotFound = errors.New("item not found")
)

// Backend is the item persistence used by the inventory screen.
type Backend interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, fields models.ItemFields) (models.Item, error)
	Patch(ctx context.Context, id string, fields models.ItemFields) (models.Item, error)
	Remove(ctx context.Context, id string) error
}

// Preferences is implemented by backends that persist view options.
type Preferences interface {
	LoadPreferences(ctx context.Context) (view.Options, error)
	SavePreferences(ctx context.Context, opts view.Options) error
}

// Importer is implemented by backends that accept a bulk import.
type Importer interface {
	// Import stores items under fresh ids, ahead of the existing ones,
	// and returns them as stored.
	Import(ctx context.Context, items []models.Item) ([]models.Item, error)
}
