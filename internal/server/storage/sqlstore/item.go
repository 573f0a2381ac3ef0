package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/storage"
)

const itemColumns = `id, owner_id, name, qty, unit, cost, low_at, created_at, updated_at`

// ListOwned returns all items of the owner, newest created first.
// Returns empty slice if owner has no items
func (s *Storage) ListOwned(ctx context.Context, ownerID string) (items []*models.Item, err error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.queryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	items = make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// FindOwnedByID retrieves a single item of the owner
func (s *Storage) FindOwnedByID(ctx context.Context, ownerID, id string) (*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = ? AND owner_id = ?
	`

	item, err := scanItem(s.queryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Insert stores a new item. The caller-supplied ID is replaced.
func (s *Storage) Insert(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now().UTC()
	item.ID = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.execContext(ctx, query,
		item.ID,
		item.OwnerID,
		item.Name,
		item.Qty,
		item.Unit,
		item.Cost,
		item.LowAt,
		now.UnixNano(),
		now.UnixNano(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// UpdateFields applies the supplied fields in a single UPDATE statement
// and returns the stored item.
func (s *Storage) UpdateFields(ctx context.Context, ownerID, id string, fields models.ItemFields) (*models.Item, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Qty != nil {
		sets = append(sets, "qty = ?")
		args = append(args, *fields.Qty)
	}
	if fields.Unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, *fields.Unit)
	}
	if fields.Cost != nil {
		sets = append(sets, "cost = ?")
		args = append(args, *fields.Cost)
	}
	if fields.LowAt != nil {
		sets = append(sets, "low_at = ?")
		args = append(args, *fields.LowAt)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.now().UTC().UnixNano(), id, ownerID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND owner_id = ?`

	result, err := tx.ExecContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, storage.ErrItemNotFound
	}

	selectQuery := `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND owner_id = ?`
	item, err := scanItem(tx.QueryRowContext(ctx, s.dialect.rebind(selectQuery), id, ownerID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}

// DeleteOwnedByID removes an item of the owner
func (s *Storage) DeleteOwnedByID(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM items WHERE id = ? AND owner_id = ?`

	result, err := s.execContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var createdAt, updatedAt int64

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Qty,
		&item.Unit,
		&item.Cost,
		&item.LowAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	item.CreatedAt = unixNanoToTime(createdAt)
	item.UpdatedAt = unixNanoToTime(updatedAt)
	return item, nil
}
