package storage

import (
	"context"

	"github.com/iudanet/stockkeeper/internal/models"
)

// StateStorage holds the local-only inventory as one composite document.
type StateStorage interface {
	// LoadState returns ErrStateNotFound when nothing was saved yet
	// and ErrStateCorrupted when the stored document cannot be decoded.
	LoadState(ctx context.Context) (*StateDocument, error)

	// SaveState overwrites the whole document
	SaveState(ctx context.Context, doc *StateDocument) error
}

// StateDocument is the persisted local state: items plus view preferences.
// Filter and SortBy are kept as raw strings so that a document written by
// a newer client still loads.
type StateDocument struct {
	Filter string        `json:"filter"`
	SortBy string        `json:"sortBy"`
	Query  string        `json:"query"`
	Items  []models.Item `json:"items"`
}
