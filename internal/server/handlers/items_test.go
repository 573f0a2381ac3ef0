package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/service"
	"github.com/iudanet/stockkeeper/pkg/api"
)

func newItemsRequest(method, path, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if userID != "" {
		req = req.WithContext(WithUserID(req.Context(), userID))
	}
	return req
}

func TestItemsHandler_List(t *testing.T) {
	svc := &mockItemService{items: []*models.Item{
		{ID: "b", OwnerID: "user-1", Name: "Bread", Qty: 2, Unit: "loaf", Cost: 30, LowAt: 1},
		{ID: "a", OwnerID: "user-1", Name: "Apples", Qty: 0, Cost: 5, LowAt: 3},
	}}
	handler := NewItemsHandler(setupTestLogger(), svc)

	w := httptest.NewRecorder()
	handler.List(w, newItemsRequest(http.MethodGet, api.PathItems, "", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.lastOwner)
	assert.JSONEq(t, `[
		{"id":"b","name":"Bread","qty":2,"unit":"loaf","cost":30,"lowAt":1},
		{"id":"a","name":"Apples","qty":0,"unit":"","cost":5,"lowAt":3}
	]`, w.Body.String())
}

func TestItemsHandler_ListEmpty(t *testing.T) {
	handler := NewItemsHandler(setupTestLogger(), &mockItemService{items: []*models.Item{}})

	w := httptest.NewRecorder()
	handler.List(w, newItemsRequest(http.MethodGet, api.PathItems, "", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestItemsHandler_Unauthenticated(t *testing.T) {
	svc := &mockItemService{}
	handler := NewItemsHandler(setupTestLogger(), svc)

	w := httptest.NewRecorder()
	handler.List(w, newItemsRequest(http.MethodGet, api.PathItems, "", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.lastOwner)
}

func TestItemsHandler_Create(t *testing.T) {
	tests := []struct {
		svcErr     error
		check      func(t *testing.T, fields models.ItemFields)
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "created",
			body:       `{"id":"ignored","name":"Rice","qty":3,"unit":"kg","cost":40,"lowAt":1,"color":"red"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, fields models.ItemFields) {
				require.NotNil(t, fields.Name)
				assert.Equal(t, "Rice", *fields.Name)
				require.NotNil(t, fields.Qty)
				assert.Equal(t, 3, *fields.Qty)
				require.NotNil(t, fields.LowAt)
				assert.Equal(t, 1, *fields.LowAt)
			},
		},
		{
			name:       "malformed JSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong field type",
			body:       `{"name":"Rice","qty":"three"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			body:       `{"qty":1}`,
			svcErr:     svcErr(service.ErrValidation, "name is required"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockItemService{item: &models.Item{ID: "new", Name: "Rice"}, err: tt.svcErr}
			handler := NewItemsHandler(setupTestLogger(), svc)

			w := httptest.NewRecorder()
			handler.Create(w, newItemsRequest(http.MethodPost, api.PathItems, tt.body, "user-1"))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.check != nil {
				tt.check(t, svc.lastFields)
				var item models.Item
				require.NoError(t, json.NewDecoder(w.Body).Decode(&item))
				assert.Equal(t, "new", item.ID)
			}
		})
	}
}

func TestItemsHandler_Patch(t *testing.T) {
	tests := []struct {
		svcErr     error
		name       string
		body       string
		wantStatus int
	}{
		{name: "updated", body: `{"qty":5}`, wantStatus: http.StatusOK},
		{name: "not found", body: `{"qty":5}`, svcErr: svcErr(service.ErrNotFound, "item not found"), wantStatus: http.StatusNotFound},
		{name: "malformed", body: `[`, wantStatus: http.StatusBadRequest},
		{name: "internal", body: `{"qty":5}`, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockItemService{item: &models.Item{ID: "item-1", Qty: 5}, err: tt.svcErr}
			handler := NewItemsHandler(setupTestLogger(), svc)

			req := newItemsRequest(http.MethodPatch, api.ItemPath("item-1"), tt.body, "user-1")
			req.SetPathValue("id", "item-1")
			w := httptest.NewRecorder()
			handler.Patch(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "item-1", svc.lastID)
				require.NotNil(t, svc.lastFields.Qty)
				assert.Equal(t, 5, *svc.lastFields.Qty)
				assert.Nil(t, svc.lastFields.Name)
			}
		})
	}
}

func TestItemsHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &mockItemService{}
		handler := NewItemsHandler(setupTestLogger(), svc)

		req := newItemsRequest(http.MethodDelete, api.ItemPath("item-1"), "", "user-1")
		req.SetPathValue("id", "item-1")
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "item-1", svc.lastID)
		assert.Equal(t, "user-1", svc.lastOwner)
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewItemsHandler(setupTestLogger(), &mockItemService{err: svcErr(service.ErrNotFound, "item not found")})

		req := newItemsRequest(http.MethodDelete, api.ItemPath("x"), "", "user-1")
		req.SetPathValue("id", "x")
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "item not found")
	})
}
