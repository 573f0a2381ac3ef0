package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/storage"
)

// CreateAccount creates a new account in the storage
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = s.now().UTC()
	}

	_, err := s.execContext(ctx, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.CreatedAt.UnixNano(),
	)

	if err != nil {
		// Проверяем на duplicate username
		if s.dialect.isUniqueViolation(err) {
			return storage.ErrAccountExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccountByUsername retrieves account by username
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE username = ?
	`

	return s.scanAccount(s.queryRowContext(ctx, query, username))
}

// GetAccountByID retrieves account by ID
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE id = ?
	`

	return s.scanAccount(s.queryRowContext(ctx, query, id))
}

func (s *Storage) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var createdAt int64

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.CreatedAt = unixNanoToTime(createdAt)
	return account, nil
}
