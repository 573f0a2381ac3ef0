package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/stockkeeper/internal/crypto"
	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/storage"
	"github.com/iudanet/stockkeeper/internal/validation"
)

// TokenIssuer выпускает токен сессии для аккаунта
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService регистрирует и аутентифицирует аккаунты
type AuthService struct {
	logger     *slog.Logger
	accounts   storage.AccountStorage
	tokens     TokenIssuer
	dummyHash  string
	bcryptCost int
}

// NewAuthService создает AuthService
func NewAuthService(logger *slog.Logger, accounts storage.AccountStorage, tokens TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{
		logger:     logger,
		accounts:   accounts,
		tokens:     tokens,
		dummyHash:  crypto.DummyHash(bcryptCost),
		bcryptCost: bcryptCost,
	}
}

// Register создает аккаунт и возвращает его вместе с токеном сессии
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.Account, string, error) {
	username = validation.NormalizeUsername(username)

	if err := validation.ValidateNewCredentials(username, password); err != nil {
		return nil, "", newError(ErrValidation, err.Error())
	}

	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, "", newError(ErrValidation, validation.ErrPasswordTooLong.Error())
		}
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
	}

	// Уникальность обеспечивает UNIQUE индекс, а не предварительная проверка
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			return nil, "", newError(ErrConflict, "username already exists")
		}
		return nil, "", fmt.Errorf("create account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered",
		slog.String("username", account.Username),
		slog.String("user_id", account.ID))

	return account, token, nil
}

// Login проверяет пароль и возвращает аккаунт с новым токеном.
// Неизвестный username и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	username = validation.NormalizeUsername(username)

	if err := validation.ValidateCredentials(username, password); err != nil {
		return nil, "", newError(ErrValidation, err.Error())
	}

	invalid := newError(ErrUnauthorized, "invalid credentials")

	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			// выравниваем время ответа с веткой неверного пароля
			_ = crypto.VerifyPassword(s.dummyHash, password)
			s.logger.WarnContext(ctx, "login failed", slog.String("reason", "unknown username"))
			return nil, "", invalid
		}
		return nil, "", fmt.Errorf("get account: %w", err)
	}

	if err := crypto.VerifyPassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			s.logger.WarnContext(ctx, "login failed",
				slog.String("reason", "password mismatch"),
				slog.String("user_id", account.ID))
			return nil, "", invalid
		}
		return nil, "", fmt.Errorf("verify password: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "account logged in", slog.String("user_id", account.ID))

	return account, token, nil
}

// Me возвращает аккаунт аутентифицированного пользователя.
// Удаленный аккаунт с еще валидным токеном считается неавторизованным.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.Account, error) {
	if userID == "" {
		return nil, newError(ErrUnauthorized, "unauthorized")
	}

	account, err := s.accounts.GetAccountByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, newError(ErrUnauthorized, "unauthorized")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}
