package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/stockkeeper/internal/client/api"
	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/pkg/api"
)

func TestRemote_DelegatesToClient(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"1","name":"Flour","qty":2,"unit":"kg","cost":45,"lowAt":3}]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"2","name":"Sugar","qty":0,"unit":"","cost":0,"lowAt":0}`))
		case http.MethodPatch:
			_, _ = w.Write([]byte(`{"id":"1","name":"Flour","qty":3,"unit":"kg","cost":45,"lowAt":3}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found","message":"item not found"}`))
		}
	}))
	defer server.Close()

	client, err := clientapi.NewClient(server.URL)
	require.NoError(t, err)
	remote := NewRemote(client)
	ctx := context.Background()

	items, err := remote.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	created, err := remote.Create(ctx, models.ItemFields{Name: ptr("Sugar")})
	require.NoError(t, err)
	assert.Equal(t, "2", created.ID)

	patched, err := remote.Patch(ctx, "1", models.ItemFields{Qty: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, patched.Qty)

	err = remote.Remove(ctx, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item not found")

	assert.Equal(t, []string{
		"GET " + api.PathItems,
		"POST " + api.PathItems,
		"PATCH " + api.ItemPath("1"),
		"DELETE " + api.ItemPath("1"),
	}, calls)
}
