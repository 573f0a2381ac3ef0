package storage

import (
	"context"

	"github.com/iudanet/stockkeeper/internal/models"
)

// ItemStorage defines interface for owner-scoped item persistence.
// Every method filters by ownerID; an item of another owner is
// indistinguishable from a missing one.
type ItemStorage interface {
	// ListOwned returns owner's items, newest created first
	ListOwned(ctx context.Context, ownerID string) ([]*models.Item, error)

	// FindOwnedByID returns ErrItemNotFound if the item is missing or foreign
	FindOwnedByID(ctx context.Context, ownerID, id string) (*models.Item, error)

	// Insert stores a new item. ID, CreatedAt and UpdatedAt are assigned by the storage.
	Insert(ctx context.Context, item *models.Item) error

	// UpdateFields atomically applies the supplied fields and returns the updated item
	// Returns ErrItemNotFound if the item is missing or foreign
	UpdateFields(ctx context.Context, ownerID, id string, fields models.ItemFields) (*models.Item, error)

	// DeleteOwnedByID returns ErrItemNotFound if the item is missing or foreign
	DeleteOwnedByID(ctx context.Context, ownerID, id string) error
}
