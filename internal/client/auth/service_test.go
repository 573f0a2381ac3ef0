package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/stockkeeper/internal/client/api"
	"github.com/iudanet/stockkeeper/internal/client/storage"
	"github.com/iudanet/stockkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/stockkeeper/internal/validation"
	pkgapi "github.com/iudanet/stockkeeper/pkg/api"
)

// mockClient implements Client for testing
type mockClient struct {
	registerErr error
	loginErr    error
	logoutErr   error
	meErr       error
	user        *pkgapi.UserResponse
	baseURL     string
	token       string
	issueToken  string
	calls       []string
}

func (m *mockClient) Register(ctx context.Context, username, password string) (*pkgapi.UserResponse, error) {
	m.calls = append(m.calls, "register:"+username)
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	m.token = m.issueToken
	return &pkgapi.UserResponse{ID: "u-1", Username: username}, nil
}

func (m *mockClient) Login(ctx context.Context, username, password string) (*pkgapi.UserResponse, error) {
	m.calls = append(m.calls, "login:"+username)
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	m.token = m.issueToken
	return &pkgapi.UserResponse{ID: "u-1", Username: username}, nil
}

func (m *mockClient) Logout(ctx context.Context) error {
	m.calls = append(m.calls, "logout")
	return m.logoutErr
}

func (m *mockClient) Me(ctx context.Context) (*pkgapi.UserResponse, error) {
	m.calls = append(m.calls, "me")
	return m.user, m.meErr
}

func (m *mockClient) BaseURL() string              { return m.baseURL }
func (m *mockClient) SessionToken() string         { return m.token }
func (m *mockClient) SetSessionToken(token string) { m.token = token }

func newTestService(t *testing.T, client *mockClient) (*Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, client, store), store
}

func TestService_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{baseURL: "http://localhost:4000", issueToken: "tok-1"}
	svc, store := newTestService(t, client)

	session, err := svc.Login(ctx, "  alice ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, &storage.SessionData{
		ServerURL: "http://localhost:4000",
		Username:  "alice",
		UserID:    "u-1",
		Token:     "tok-1",
	}, session)
	assert.Equal(t, []string{"login:alice"}, client.calls)

	saved, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, saved)
}

func TestService_RegisterValidatesLocally(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "missing username", username: "   ", password: "secret1", wantErr: validation.ErrMissingFields},
		{name: "missing password", username: "alice", password: "", wantErr: validation.ErrMissingFields},
		{name: "short password", username: "alice", password: "12345", wantErr: validation.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{issueToken: "tok"}
			svc, _ := newTestService(t, client)

			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, client.calls)
		})
	}
}

func TestService_RegisterConflictKeepsExistingSession(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{baseURL: "http://srv", issueToken: "tok-1"}
	svc, store := newTestService(t, client)

	_, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	client.registerErr = &clientapi.Error{StatusCode: http.StatusConflict, Message: "username already exists"}
	_, err = svc.Register(ctx, "alice", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already exists")

	saved, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", saved.Token)
}

func TestService_LoginWithoutCookie(t *testing.T) {
	client := &mockClient{baseURL: "http://srv"}
	svc, store := newTestService(t, client)

	_, err := svc.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)

	_, err = store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		svc, _ := newTestService(t, &mockClient{baseURL: "http://srv"})
		_, err := svc.Restore(ctx)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("same server", func(t *testing.T) {
		client := &mockClient{baseURL: "http://srv"}
		svc, store := newTestService(t, client)
		require.NoError(t, store.SaveSession(ctx, &storage.SessionData{ServerURL: "http://srv", Username: "alice", Token: "tok"}))

		session, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", session.Username)
		assert.Equal(t, "tok", client.token)
	})

	t.Run("other server", func(t *testing.T) {
		client := &mockClient{baseURL: "http://srv"}
		svc, store := newTestService(t, client)
		require.NoError(t, store.SaveSession(ctx, &storage.SessionData{ServerURL: "http://other", Token: "tok"}))

		_, err := svc.Restore(ctx)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.Empty(t, client.token)
	})
}

func TestService_LogoutAlwaysClearsLocalSession(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{baseURL: "http://srv", issueToken: "tok", logoutErr: errors.New("connection refused")}
	svc, store := newTestService(t, client)

	_, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Empty(t, client.token)

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторный logout без сессии не ошибка
	assert.NoError(t, svc.Logout(ctx))
}

func TestService_WhoAmI(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		client := &mockClient{baseURL: "http://srv", user: &pkgapi.UserResponse{ID: "u-1", Username: "alice"}}
		svc, _ := newTestService(t, client)

		user, err := svc.WhoAmI(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		client := &mockClient{
			baseURL:    "http://srv",
			issueToken: "tok",
			meErr:      &clientapi.Error{StatusCode: http.StatusUnauthorized, Message: "unauthorized"},
		}
		svc, store := newTestService(t, client)
		_, err := svc.Login(ctx, "alice", "secret1")
		require.NoError(t, err)

		_, err = svc.WhoAmI(ctx)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.Empty(t, client.token)

		_, err = store.GetSession(ctx)
		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	})

	t.Run("server down keeps session", func(t *testing.T) {
		boom := errors.New("connection refused")
		client := &mockClient{baseURL: "http://srv", issueToken: "tok", meErr: boom}
		svc, store := newTestService(t, client)
		_, err := svc.Login(ctx, "alice", "secret1")
		require.NoError(t, err)

		_, err = svc.WhoAmI(ctx)
		assert.ErrorIs(t, err, boom)

		_, err = store.GetSession(ctx)
		assert.NoError(t, err)
	})
}
