package auth

import (
	"context"
	"errors"

	"github.com/iudanet/stockkeeper/internal/client/storage"
	pkgapi "github.com/iudanet/stockkeeper/pkg/api"
)

// ErrNotLoggedIn indicates that there is no usable session on this machine
var ErrNotLoggedIn = errors.New("not logged in")

// Client is the part of the HTTP API client used for authentication.
// The session cookie lives inside the client.
type Client interface {
	Register(ctx context.Context, username, password string) (*pkgapi.UserResponse, error)
	Login(ctx context.Context, username, password string) (*pkgapi.UserResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*pkgapi.UserResponse, error)
	BaseURL() string
	SessionToken() string
	SetSessionToken(token string)
}

// SessionService manages the session of the remote mode
type SessionService interface {
	// Restore loads the saved session into the API client
	// Returns ErrNotLoggedIn if there is none for this server
	Restore(ctx context.Context) (*storage.SessionData, error)

	// Register создаёт аккаунт и сохраняет сессию
	Register(ctx context.Context, username, password string) (*storage.SessionData, error)

	// Login выполняет вход и сохраняет сессию
	Login(ctx context.Context, username, password string) (*storage.SessionData, error)

	// Logout удаляет сессию локально, даже если сервер недоступен
	Logout(ctx context.Context) error

	// WhoAmI asks the server who the session belongs to
	WhoAmI(ctx context.Context) (*pkgapi.UserResponse, error)
}

var _ SessionService = (*Service)(nil)
