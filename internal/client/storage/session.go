package storage

import (
	"context"
)

// SessionStorage keeps the server session between client invocations.
// It stores the cookie value as-is; the client never inspects the token.
type SessionStorage interface {
	// SaveSession replaces the stored session
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}

// SessionData represents the logged-in account on this machine
type SessionData struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	UserID    string `json:"user_id"`
	Token     string `json:"token"`
}
