package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

func (c *Cli) runExport(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: stockkeeper export [file]")
	}
	if len(args) == 0 || args[0] == "-" {
		return c.inventory.Export(c.io)
	}

	f, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := c.inventory.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	c.io.Printf("Exported %d item(s) to %s\n", len(c.inventory.Items()), args[0])
	return nil
}

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: stockkeeper import <file>")
	}

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	imported, err := c.inventory.Import(ctx, r)
	if err != nil {
		return err
	}

	c.io.Printf("Imported %d item(s)\n", len(imported))
	return nil
}
