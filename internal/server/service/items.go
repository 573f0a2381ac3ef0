package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/events"
	"github.com/iudanet/stockkeeper/internal/server/storage"
)

// ItemService реализует CRUD позиций в рамках одного владельца
type ItemService struct {
	logger    *slog.Logger
	items     storage.ItemStorage
	publisher events.Publisher
	now       func() time.Time
}

// NewItemService создает ItemService. publisher может быть nil.
func NewItemService(logger *slog.Logger, items storage.ItemStorage, publisher events.Publisher) *ItemService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ItemService{
		logger:    logger,
		items:     items,
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns the owner's items, newest first.
func (s *ItemService) List(ctx context.Context, ownerID string) ([]*models.Item, error) {
	items, err := s.items.ListOwned(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create stores a new item. Missing numeric fields default to zero,
// missing unit to the empty string. Name is required.
func (s *ItemService) Create(ctx context.Context, ownerID string, fields models.ItemFields) (*models.Item, error) {
	fields.Normalize()
	if fields.Name == nil || *fields.Name == "" {
		return nil, newError(ErrValidation, "name is required")
	}

	item := &models.Item{OwnerID: ownerID}
	fields.Apply(item)

	if err := s.items.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	s.publish(ctx, events.TypeItemCreated, item)
	if item.IsLow() {
		s.publish(ctx, events.TypeItemLowStock, item)
	}

	return item, nil
}

// Patch applies the supplied fields to an owned item.
func (s *ItemService) Patch(ctx context.Context, ownerID, id string, fields models.ItemFields) (*models.Item, error) {
	fields.Normalize()
	if fields.Name != nil && *fields.Name == "" {
		return nil, newError(ErrValidation, "name must not be empty")
	}

	before, err := s.items.FindOwnedByID(ctx, ownerID, id)
	if err != nil {
		return nil, s.itemError(err, "find item")
	}

	item, err := s.items.UpdateFields(ctx, ownerID, id, fields)
	if err != nil {
		return nil, s.itemError(err, "update item")
	}

	s.publish(ctx, events.TypeItemUpdated, item)
	if !before.IsLow() && item.IsLow() {
		s.publish(ctx, events.TypeItemLowStock, item)
	}

	return item, nil
}

// Remove deletes an owned item.
func (s *ItemService) Remove(ctx context.Context, ownerID, id string) error {
	if err := s.items.DeleteOwnedByID(ctx, ownerID, id); err != nil {
		return s.itemError(err, "delete item")
	}

	s.publish(ctx, events.TypeItemDeleted, &models.Item{ID: id, OwnerID: ownerID})
	return nil
}

func (s *ItemService) itemError(err error, op string) error {
	if errors.Is(err, storage.ErrItemNotFound) {
		return newError(ErrNotFound, "item not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ItemService) publish(ctx context.Context, eventType string, item *models.Item) {
	if err := s.publisher.Publish(ctx, events.New(eventType, item, s.now())); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", eventType),
			slog.String("item_id", item.ID),
			slog.Any("error", err))
	}
}
