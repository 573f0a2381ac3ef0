package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stockkeeper/internal/client/storage"
)

var stateKey = []byte("inventory")

// LoadState reads the composite local state document
func (s *Storage) LoadState(ctx context.Context) (*storage.StateDocument, error) {
	var doc *storage.StateDocument

	err := s.view(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketState).Get(stateKey)
		if data == nil {
			return storage.ErrStateNotFound
		}

		doc = &storage.StateDocument{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrStateCorrupted, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// SaveState overwrites the composite local state document
func (s *Storage) SaveState(ctx context.Context, doc *storage.StateDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketState).Put(stateKey, data); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		return nil
	})
}
