package backend

import (
	"context"

	"github.com/iudanet/stockkeeper/internal/models"
)

// ItemClient is the part of the HTTP API client used by Remote.
type ItemClient interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, fields models.ItemFields) (models.Item, error)
	PatchItem(ctx context.Context, id string, fields models.ItemFields) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Remote stores items on the server. Every call is one HTTP round trip.
type Remote struct {
	client ItemClient
}

// NewRemote creates the server-backed backend.
func NewRemote(client ItemClient) *Remote {
	return &Remote{client: client}
}

func (r *Remote) List(ctx context.Context) ([]models.Item, error) {
	return r.client.ListItems(ctx)
}

func (r *Remote) Create(ctx context.Context, fields models.ItemFields) (models.Item, error) {
	return r.client.CreateItem(ctx, fields)
}

func (r *Remote) Patch(ctx context.Context, id string, fields models.ItemFields) (models.Item, error) {
	return r.client.PatchItem(ctx, id, fields)
}

func (r *Remote) Remove(ctx context.Context, id string) error {
	return r.client.DeleteItem(ctx, id)
}
