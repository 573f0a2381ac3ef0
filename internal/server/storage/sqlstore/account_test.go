package sqlstore

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/storage"
)

func TestAccountStorage_CreateAccount(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		wantError error
		account   *models.Account
		name      string
	}{
		{
			name: "create new account successfully",
			account: &models.Account{
				ID:           uuid.New().String(),
				Username:     "alice",
				PasswordHash: "hash1",
			},
		},
		{
			name: "duplicate username",
			account: &models.Account{
				ID:           uuid.New().String(),
				Username:     "alice",
				PasswordHash: "hash2",
			},
			wantError: storage.ErrAccountExists,
		},
		{
			name: "usernames are case sensitive",
			account: &models.Account{
				ID:           uuid.New().String(),
				Username:     "Alice",
				PasswordHash: "hash3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateAccount(ctx, tt.account)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			got, err := s.GetAccountByUsername(ctx, tt.account.Username)
			require.NoError(t, err)
			assert.Equal(t, tt.account.ID, got.ID)
			assert.Equal(t, tt.account.PasswordHash, got.PasswordHash)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

func TestAccountStorage_ConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.CreateAccount(ctx, &models.Account{
				ID:           uuid.New().String(),
				Username:     "racer",
				PasswordHash: "hash",
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, storage.ErrAccountExists) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}

func TestAccountStorage_GetAccount(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	account := &models.Account{
		ID:           uuid.New().String(),
		Username:     "bob",
		PasswordHash: "hash",
	}
	require.NoError(t, s.CreateAccount(ctx, account))

	t.Run("by id", func(t *testing.T) {
		got, err := s.GetAccountByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.GetAccountByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := s.GetAccountByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})
}
