package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clientapi "github.com/iudanet/stockkeeper/internal/client/api"
	"github.com/iudanet/stockkeeper/internal/client/storage"
	"github.com/iudanet/stockkeeper/internal/validation"
	pkgapi "github.com/iudanet/stockkeeper/pkg/api"
)

// Service предоставляет функции авторизации
type Service struct {
	client Client
	store  storage.SessionStorage
	logger *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(logger *slog.Logger, client Client, store storage.SessionStorage) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Restore loads the saved session into the API client
func (s *Service) Restore(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Сессия от другого сервера не подходит
	if session.ServerURL != s.client.BaseURL() || session.Token == "" {
		return nil, ErrNotLoggedIn
	}

	s.client.SetSessionToken(session.Token)
	return session, nil
}

// Register регистрирует нового пользователя и сохраняет сессию
func (s *Service) Register(ctx context.Context, username, password string) (*storage.SessionData, error) {
	username = validation.NormalizeUsername(username)
	if err := validation.ValidateNewCredentials(username, password); err != nil {
		return nil, err
	}

	user, err := s.client.Register(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.persist(ctx, user)
}

// Login выполняет аутентификацию пользователя и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*storage.SessionData, error) {
	username = validation.NormalizeUsername(username)
	if err := validation.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	user, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.persist(ctx, user)
}

// Logout выполняет выход из системы
func (s *Service) Logout(ctx context.Context) error {
	// Сервер только очищает cookie, поэтому ошибка не критична
	if err := s.client.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to logout on server", slog.Any("error", err))
	}
	s.client.SetSessionToken("")

	// Всегда удаляем локальные данные, даже если сервер недоступен
	if err := s.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// WhoAmI asks the server who the session belongs to. A session the server
// no longer accepts is removed locally.
func (s *Service) WhoAmI(ctx context.Context) (*pkgapi.UserResponse, error) {
	user, err := s.client.Me(ctx)
	if err == nil {
		return user, nil
	}

	if clientapi.IsUnauthorized(err) {
		s.client.SetSessionToken("")
		if delErr := s.store.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "Failed to delete stale session", slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}
	return nil, err
}

func (s *Service) persist(ctx context.Context, user *pkgapi.UserResponse) (*storage.SessionData, error) {
	token := s.client.SessionToken()
	if token == "" {
		return nil, errors.New("server did not set a session cookie")
	}

	session := &storage.SessionData{
		ServerURL: s.client.BaseURL(),
		Username:  user.Username,
		UserID:    user.ID,
		Token:     token,
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.DebugContext(ctx, "Session saved", slog.String("username", user.Username))
	return session, nil
}
