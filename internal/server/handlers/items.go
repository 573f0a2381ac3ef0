package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/stockkeeper/internal/models"
)

// ItemService описывает CRUD позиций владельца
type ItemService interface {
	List(ctx context.Context, ownerID string) ([]*models.Item, error)
	Create(ctx context.Context, ownerID string, fields models.ItemFields) (*models.Item, error)
	Patch(ctx context.Context, ownerID, id string, fields models.ItemFields) (*models.Item, error)
	Remove(ctx context.Context, ownerID, id string) error
}

// ItemsHandler обрабатывает /api/items. Все маршруты за auth middleware.
type ItemsHandler struct {
	items ItemService
	responder
}

// NewItemsHandler создает handler позиций
func NewItemsHandler(logger *slog.Logger, items ItemService) *ItemsHandler {
	return &ItemsHandler{
		responder: responder{logger: logger},
		items:     items,
	}
}

// List обрабатывает GET /api/items
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	items, err := h.items.List(r.Context(), ownerID)
	if err != nil {
		h.sendServiceError(w, r, err, "list items")
		return
	}

	h.sendJSON(w, items, http.StatusOK)
}

// Create обрабатывает POST /api/items
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var fields models.ItemFields
	if !h.decodeJSON(w, r, &fields) {
		return
	}

	item, err := h.items.Create(r.Context(), ownerID, fields)
	if err != nil {
		h.sendServiceError(w, r, err, "create item")
		return
	}

	h.logger.InfoContext(r.Context(), "item created",
		slog.String("user_id", ownerID),
		slog.String("item_id", item.ID))

	h.sendJSON(w, item, http.StatusCreated)
}

// Patch обрабатывает PATCH /api/items/{id}
func (h *ItemsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var fields models.ItemFields
	if !h.decodeJSON(w, r, &fields) {
		return
	}

	item, err := h.items.Patch(r.Context(), ownerID, r.PathValue("id"), fields)
	if err != nil {
		h.sendServiceError(w, r, err, "patch item")
		return
	}

	h.sendJSON(w, item, http.StatusOK)
}

// Delete обрабатывает DELETE /api/items/{id}
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := h.items.Remove(r.Context(), ownerID, r.PathValue("id")); err != nil {
		h.sendServiceError(w, r, err, "delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemsHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := GetUserID(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return ownerID, true
}
