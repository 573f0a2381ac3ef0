package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/service"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockAuthService is a mock implementation of AuthService for testing
type mockAuthService struct {
	account  *models.Account
	err      error
	token    string
	lastUser string
	lastPass string
}

func (m *mockAuthService) Register(_ context.Context, username, password string) (*models.Account, string, error) {
	m.lastUser, m.lastPass = username, password
	if m.err != nil {
		return nil, "", m.err
	}
	return m.account, m.token, nil
}

func (m *mockAuthService) Login(_ context.Context, username, password string) (*models.Account, string, error) {
	m.lastUser, m.lastPass = username, password
	if m.err != nil {
		return nil, "", m.err
	}
	return m.account, m.token, nil
}

func (m *mockAuthService) Me(_ context.Context, userID string) (*models.Account, error) {
	m.lastUser = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

// mockCookies запоминает выставленные токены
type mockCookies struct {
	set     string
	cleared bool
}

func (m *mockCookies) SetCookie(w http.ResponseWriter, token string) {
	m.set = token
	http.SetCookie(w, &http.Cookie{Name: "token", Value: token})
}

func (m *mockCookies) ClearCookie(w http.ResponseWriter) {
	m.cleared = true
	http.SetCookie(w, &http.Cookie{Name: "token", MaxAge: -1})
}

// mockItemService is a mock implementation of ItemService for testing
type mockItemService struct {
	items      []*models.Item
	item       *models.Item
	err        error
	lastOwner  string
	lastID     string
	lastFields models.ItemFields
}

func (m *mockItemService) List(_ context.Context, ownerID string) ([]*models.Item, error) {
	m.lastOwner = ownerID
	return m.items, m.err
}

func (m *mockItemService) Create(_ context.Context, ownerID string, fields models.ItemFields) (*models.Item, error) {
	m.lastOwner, m.lastFields = ownerID, fields
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockItemService) Patch(_ context.Context, ownerID, id string, fields models.ItemFields) (*models.Item, error) {
	m.lastOwner, m.lastID, m.lastFields = ownerID, id, fields
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockItemService) Remove(_ context.Context, ownerID, id string) error {
	m.lastOwner, m.lastID = ownerID, id
	return m.err
}

func svcErr(kind error, msg string) error {
	return &service.Error{Kind: kind, Message: msg}
}
