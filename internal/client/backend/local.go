package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/iudanet/stockkeeper/internal/client/storage"
	"github.com/iudanet/stockkeeper/internal/client/view"
	"github.com/iudanet/stockkeeper/internal/models"
)

// Local stores the whole inventory as one document. Each operation reads the
// document, changes it and writes it back.
type Local struct {
	store  storage.StateStorage
	logger *slog.Logger
	newID  func() string
}

// NewLocal creates the file-backed backend.
func NewLocal(logger *slog.Logger, store storage.StateStorage) *Local {
	return &Local{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (l *Local) List(ctx context.Context) ([]models.Item, error) {
	doc, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(doc.Items), nil
}

func (l *Local) Create(ctx context.Context, fields models.ItemFields) (models.Item, error) {
	fields.Normalize()
	if fields.Name == nil || *fields.Name == "" {
		return models.Item{}, ErrInvalidItem
	}

	doc, err := l.load(ctx)
	if err != nil {
		return models.Item{}, err
	}

	item := models.Item{ID: l.newID()}
	fields.Apply(&item)
	doc.Items = append([]models.Item{item}, doc.Items...)

	if err := l.store.SaveState(ctx, doc); err != nil {
		return models.Item{}, fmt.Errorf("failed to save state: %w", err)
	}
	return item, nil
}

func (l *Local) Patch(ctx context.Context, id string, fields models.ItemFields) (models.Item, error) {
	fields.Normalize()
	if fields.Name != nil && *fields.Name == "" {
		return models.Item{}, ErrInvalidItem
	}

	doc, err := l.load(ctx)
	if err != nil {
		return models.Item{}, err
	}

	i := slices.IndexFunc(doc.Items, func(it models.Item) bool { return it.ID == id })
	if i < 0 {
		return models.Item{}, ErrItemNotFound
	}
	fields.Apply(&doc.Items[i])

	if err := l.store.SaveState(ctx, doc); err != nil {
		return models.Item{}, fmt.Errorf("failed to save state: %w", err)
	}
	return doc.Items[i], nil
}

func (l *Local) Remove(ctx context.Context, id string) error {
	doc, err := l.load(ctx)
	if err != nil {
		return err
	}

	before := len(doc.Items)
	doc.Items = slices.DeleteFunc(doc.Items, func(it models.Item) bool { return it.ID == id })
	if len(doc.Items) == before {
		return ErrItemNotFound
	}

	if err := l.store.SaveState(ctx, doc); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Import prepends items in document order, each under a fresh id.
func (l *Local) Import(ctx context.Context, items []models.Item) ([]models.Item, error) {
	doc, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	imported := make([]models.Item, 0, len(items))
	for _, it := range items {
		it.ID = l.newID()
		it.Normalize()
		imported = append(imported, it)
	}
	doc.Items = append(slices.Clone(imported), doc.Items...)

	if err := l.store.SaveState(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}
	return imported, nil
}

// LoadPreferences returns the persisted view options.
func (l *Local) LoadPreferences(ctx context.Context) (view.Options, error) {
	doc, err := l.load(ctx)
	if err != nil {
		return view.Options{}, err
	}
	return view.OptionsFrom(doc.Query, doc.Filter, doc.SortBy), nil
}

// SavePreferences persists view options next to the items.
func (l *Local) SavePreferences(ctx context.Context, opts view.Options) error {
	doc, err := l.load(ctx)
	if err != nil {
		return err
	}

	doc.Query = opts.Query
	doc.Filter = string(opts.Filter)
	doc.SortBy = string(opts.Sort)

	if err := l.store.SaveState(ctx, doc); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// load returns the stored document, or the default state when nothing
// usable was stored.
func (l *Local) load(ctx context.Context) (*storage.StateDocument, error) {
	doc, err := l.store.LoadState(ctx)
	switch {
	case err == nil:
		if doc.Items == nil {
			doc.Items = []models.Item{}
		}
		return doc, nil
	case errors.Is(err, storage.ErrStateNotFound):
		return defaultState(), nil
	case errors.Is(err, storage.ErrStateCorrupted):
		l.logger.WarnContext(ctx, "Local state is corrupted, starting from defaults", slog.Any("error", err))
		return defaultState(), nil
	default:
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
}

func defaultState() *storage.StateDocument {
	opts := view.DefaultOptions()
	return &storage.StateDocument{
		Items:  []models.Item{},
		Filter: string(opts.Filter),
		SortBy: string(opts.Sort),
	}
}
