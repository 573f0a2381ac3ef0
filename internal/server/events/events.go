// Package events publishes item change notifications.
package events

import (
	"context"
	"time"

	"github.com/iudanet/stockkeeper/internal/models"
)

// Типы событий; используются как routing key
const (
	TypeItemCreated  = "item.created"
	TypeItemUpdated  = "item.updated"
	TypeItemDeleted  = "item.deleted"
	TypeItemLowStock = "item.low_stock"
)

// Event описывает изменение позиции
type Event struct {
	OccurredAt time.Time    `json:"occurred_at"`
	Item       *models.Item `json:"item,omitempty"`
	Type       string       `json:"type"`
	OwnerID    string       `json:"owner_id"`
	ItemID     string       `json:"item_id"`
}

// Publisher публикует события. Ошибка публикации не должна ломать запрос.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// New builds an event of the given type for item.
func New(eventType string, item *models.Item, now time.Time) Event {
	return Event{
		Type:       eventType,
		OwnerID:    item.OwnerID,
		ItemID:     item.ID,
		Item:       item,
		OccurredAt: now.UTC(),
	}
}
