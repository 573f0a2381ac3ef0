package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/stockkeeper/internal/models"
)

// Значения по умолчанию для нового товара
const (
	defaultQty   = 1
	defaultUnit  = "box"
	defaultLowAt = 5
)

type itemFlags struct {
	name  string
	unit  string
	cost  float64
	qty   int
	lowAt int
}

func (c *Cli) newItemFlagSet(command string) (*flag.FlagSet, *itemFlags) {
	f := &itemFlags{}
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(c.io)
	fs.StringVar(&f.name, "name", "", "item name")
	fs.IntVar(&f.qty, "qty", defaultQty, "quantity")
	fs.StringVar(&f.unit, "unit", defaultUnit, "unit of measure")
	fs.Float64Var(&f.cost, "cost", 0, "cost per unit")
	fs.IntVar(&f.lowAt, "low-at", defaultLowAt, "low stock threshold")
	return fs, f
}

// all returns every field, unset flags keep their defaults
func (f *itemFlags) all() models.ItemFields {
	return models.ItemFields{Name: &f.name, Qty: &f.qty, Unit: &f.unit, Cost: &f.cost, LowAt: &f.lowAt}
}

// set returns only the fields given on the command line
func (f *itemFlags) set(fs *flag.FlagSet) models.ItemFields {
	var fields models.ItemFields
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			fields.Name = &f.name
		case "qty":
			fields.Qty = &f.qty
		case "unit":
			fields.Unit = &f.unit
		case "cost":
			fields.Cost = &f.cost
		case "low-at":
			fields.LowAt = &f.lowAt
		}
	})
	return fields
}

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	fs, f := c.newItemFlagSet("add")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Без флагов спрашиваем поля по очереди
	if fs.NFlag() == 0 {
		if err := c.promptItem(f); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	item, err := c.inventory.Add(ctx, f.all())
	if err != nil {
		return err
	}

	c.io.Printf("Added %s (%s)\n", item.Name, shortID(item.ID))
	return nil
}

func (c *Cli) promptItem(f *itemFlags) error {
	var err error
	if f.name, err = c.io.ReadInput("Name: "); err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if f.qty, err = c.promptInt("Quantity", f.qty); err != nil {
		return err
	}
	unit, err := c.io.ReadInput(fmt.Sprintf("Unit [%s]: ", f.unit))
	if err != nil {
		return fmt.Errorf("failed to read unit: %w", err)
	}
	if unit != "" {
		f.unit = unit
	}
	if f.cost, err = c.promptFloat("Cost", f.cost); err != nil {
		return err
	}
	if f.lowAt, err = c.promptInt("Low stock at", f.lowAt); err != nil {
		return err
	}
	return nil
}

func (c *Cli) promptInt(label string, def int) (int, error) {
	s, err := c.io.ReadInput(fmt.Sprintf("%s [%d]: ", label, def))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a whole number", strings.ToLower(label), s)
	}
	return v, nil
}

func (c *Cli) promptFloat(label string, def float64) (float64, error) {
	s, err := c.io.ReadInput(fmt.Sprintf("%s [%g]: ", label, def))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", strings.ToLower(label), s)
	}
	return v, nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id. Usage: stockkeeper edit <id> [-name N] [-qty Q] [-unit U] [-cost C] [-low-at L]")
	}
	id, err := c.resolveID(args[0])
	if err != nil {
		return err
	}

	fs, f := c.newItemFlagSet("edit")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	fields := f.set(fs)
	if fields.IsEmpty() {
		return fmt.Errorf("nothing to change")
	}

	item, err := c.inventory.Edit(ctx, id, fields)
	if err != nil {
		return err
	}

	c.io.Printf("Updated %s\n", describe(item))
	return nil
}

func (c *Cli) runStep(ctx context.Context, args []string, step func(context.Context, string) (models.Item, error)) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one item id")
	}
	id, err := c.resolveID(args[0])
	if err != nil {
		return err
	}

	item, err := step(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("%s\n", describe(item))
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one item id")
	}
	id, err := c.resolveID(args[0])
	if err != nil {
		return err
	}
	item, _ := c.inventory.Find(id)

	if err := c.inventory.Remove(ctx, id); err != nil {
		return err
	}

	c.io.Printf("Deleted %s\n", item.Name)
	return nil
}

// resolveID accepts a full id or a unique prefix of a loaded item id
func (c *Cli) resolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty item id")
	}
	if _, ok := c.inventory.Find(prefix); ok {
		return prefix, nil
	}

	var match string
	for _, it := range c.inventory.Items() {
		if !strings.HasPrefix(it.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = it.ID
	}
	if match == "" {
		return "", fmt.Errorf("no item with id %q", prefix)
	}
	return match, nil
}

func describe(item models.Item) string {
	return fmt.Sprintf("%s: %d %s", item.Name, item.Qty, item.Unit)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
