// Package app holds the client-side inventory state. The state only changes
// from what the backend returns; a failed call leaves it as it was.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/iudanet/stockkeeper/internal/client/backend"
	"github.com/iudanet/stockkeeper/internal/client/view"
	"github.com/iudanet/stockkeeper/internal/models"
)

var (
	// ErrInvalidDocument indicates an import document that is not a list of items
	ErrInvalidDocument = errors.New("invalid import document")
	// ErrImportUnsupported indicates a backend without bulk import
	ErrImportUnsupported = errors.New("import is only available in local mode")
)

// Inventory is the item list of the current account plus view options.
type Inventory struct {
	backend backend.Backend
	prefs   backend.Preferences
	coll    *collate.Collator
	items   []models.Item
	opts    view.Options
}

// NewInventory creates an empty inventory on top of b. If b also implements
// backend.Preferences, view options are loaded from and saved to it.
func NewInventory(b backend.Backend, coll *collate.Collator) *Inventory {
	inv := &Inventory{
		backend: b,
		coll:    coll,
		items:   []models.Item{},
		opts:    view.DefaultOptions(),
	}
	if p, ok := b.(backend.Preferences); ok {
		inv.prefs = p
	}
	return inv
}

// Load fetches the item list and the saved view options.
func (inv *Inventory) Load(ctx context.Context) error {
	items, err := inv.backend.List(ctx)
	if err != nil {
		return err
	}

	opts := inv.opts
	if inv.prefs != nil {
		if opts, err = inv.prefs.LoadPreferences(ctx); err != nil {
			return err
		}
	}

	inv.items = items
	inv.opts = opts
	return nil
}

// Items returns a copy of the current item list, newest first.
func (inv *Inventory) Items() []models.Item {
	return slices.Clone(inv.items)
}

// Options returns the current view options.
func (inv *Inventory) Options() view.Options {
	return inv.opts
}

// View derives the visible list and the summary.
func (inv *Inventory) View() view.View {
	return view.Derive(inv.items, inv.opts, inv.coll)
}

// Find returns the item with the given id from the loaded list.
func (inv *Inventory) Find(id string) (models.Item, bool) {
	i := inv.indexOf(id)
	if i < 0 {
		return models.Item{}, false
	}
	return inv.items[i], true
}

// Add creates an item and puts it at the top of the list.
func (inv *Inventory) Add(ctx context.Context, fields models.ItemFields) (models.Item, error) {
	item, err := inv.backend.Create(ctx, fields)
	if err != nil {
		return models.Item{}, err
	}
	inv.items = append([]models.Item{item}, inv.items...)
	return item, nil
}

// Edit changes the supplied fields of an item.
func (inv *Inventory) Edit(ctx context.Context, id string, fields models.ItemFields) (models.Item, error) {
	item, err := inv.backend.Patch(ctx, id, fields)
	if err != nil {
		return models.Item{}, err
	}
	if i := inv.indexOf(id); i >= 0 {
		inv.items[i] = item
	}
	return item, nil
}

// Inc adds one to the known quantity.
func (inv *Inventory) Inc(ctx context.Context, id string) (models.Item, error) {
	cur, ok := inv.Find(id)
	if !ok {
		return models.Item{}, backend.ErrItemNotFound
	}
	qty := cur.Qty + 1
	return inv.Edit(ctx, id, models.ItemFields{Qty: &qty})
}

// Dec subtracts one from the known quantity, never going below zero.
func (inv *Inventory) Dec(ctx context.Context, id string) (models.Item, error) {
	cur, ok := inv.Find(id)
	if !ok {
		return models.Item{}, backend.ErrItemNotFound
	}
	qty := max(0, cur.Qty-1)
	return inv.Edit(ctx, id, models.ItemFields{Qty: &qty})
}

// Remove deletes an item.
func (inv *Inventory) Remove(ctx context.Context, id string) error {
	if err := inv.backend.Remove(ctx, id); err != nil {
		return err
	}
	inv.items = slices.DeleteFunc(inv.items, func(it models.Item) bool { return it.ID == id })
	return nil
}

// SetQuery changes the text filter.
func (inv *Inventory) SetQuery(ctx context.Context, query string) error {
	opts := inv.opts
	opts.Query = query
	return inv.setOptions(ctx, opts)
}

// SetFilter changes the category filter.
func (inv *Inventory) SetFilter(ctx context.Context, f view.Filter) error {
	opts := inv.opts
	opts.Filter = f
	return inv.setOptions(ctx, opts)
}

// SetSort changes the sort key.
func (inv *Inventory) SetSort(ctx context.Context, key view.SortKey) error {
	opts := inv.opts
	opts.Sort = key
	return inv.setOptions(ctx, opts)
}

func (inv *Inventory) setOptions(ctx context.Context, opts view.Options) error {
	if inv.prefs != nil {
		if err := inv.prefs.SavePreferences(ctx, opts); err != nil {
			return err
		}
	}
	inv.opts = opts
	return nil
}

// Export writes the item list as an indented JSON array.
func (inv *Inventory) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inv.items); err != nil {
		return fmt.Errorf("failed to export items: %w", err)
	}
	return nil
}

// Import reads a JSON array of items and adds them under fresh ids.
// A malformed document leaves the inventory unchanged.
func (inv *Inventory) Import(ctx context.Context, r io.Reader) ([]models.Item, error) {
	importer, ok := inv.backend.(backend.Importer)
	if !ok {
		return nil, ErrImportUnsupported
	}

	items, err := decodeItems(r)
	if err != nil {
		return nil, err
	}

	imported, err := importer.Import(ctx, items)
	if err != nil {
		return nil, err
	}
	inv.items = append(slices.Clone(imported), inv.items...)
	return imported, nil
}

func decodeItems(r io.Reader) ([]models.Item, error) {
	var items []models.Item
	dec := json.NewDecoder(r)
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected a list of items", ErrInvalidDocument)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after the list", ErrInvalidDocument)
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", ErrInvalidDocument, i+1)
		}
	}
	return items, nil
}

func (inv *Inventory) indexOf(id string) int {
	return slices.IndexFunc(inv.items, func(it models.Item) bool { return it.ID == id })
}
