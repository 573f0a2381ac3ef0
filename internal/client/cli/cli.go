package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/stockkeeper/internal/client/app"
	"github.com/iudanet/stockkeeper/internal/client/auth"
	"github.com/iudanet/stockkeeper/internal/client/iocli"
	"github.com/iudanet/stockkeeper/internal/client/view"
)

// Mode selects the persistence adapter
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// ParseMode parses the -mode flag
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRemote, ModeLocal:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want remote or local)", s)
	}
}

// ErrUnknownCommand indicates an unsupported command name
var ErrUnknownCommand = errors.New("unknown command")

// Cli runs one command against the inventory
type Cli struct {
	io        iocli.IO
	inventory *app.Inventory
	auth      auth.SessionService
	money     *view.Money
	mode      Mode
}

// New creates the CLI. authService is nil in local mode.
func New(io iocli.IO, mode Mode, inventory *app.Inventory, authService auth.SessionService, money *view.Money) *Cli {
	if money == nil {
		money = view.DefaultMoney()
	}
	return &Cli{
		io:        io,
		mode:      mode,
		inventory: inventory,
		auth:      authService,
		money:     money,
	}
}

// Run executes command with its arguments
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx, args)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "whoami":
		return c.runWhoAmI(ctx)
	case "list":
		return c.withInventory(ctx, func() error { return c.runList(ctx, args) })
	case "add":
		return c.withInventory(ctx, func() error { return c.runAdd(ctx, args) })
	case "edit":
		return c.withInventory(ctx, func() error { return c.runEdit(ctx, args) })
	case "inc":
		return c.withInventory(ctx, func() error { return c.runStep(ctx, args, c.inventory.Inc) })
	case "dec":
		return c.withInventory(ctx, func() error { return c.runStep(ctx, args, c.inventory.Dec) })
	case "delete":
		return c.withInventory(ctx, func() error { return c.runDelete(ctx, args) })
	case "export":
		return c.withInventory(ctx, func() error { return c.runExport(args) })
	case "import":
		return c.withInventory(ctx, func() error { return c.runImport(ctx, args) })
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// withInventory restores the session in remote mode and loads the items
func (c *Cli) withInventory(ctx context.Context, fn func() error) error {
	if c.mode == ModeRemote {
		if err := c.requireAuth(); err != nil {
			return err
		}
		if _, err := c.auth.Restore(ctx); err != nil {
			if errors.Is(err, auth.ErrNotLoggedIn) {
				return fmt.Errorf("not logged in. Please run 'stockkeeper login' first")
			}
			return err
		}
	}

	if err := c.inventory.Load(ctx); err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	return fn()
}

func (c *Cli) requireAuth() error {
	if c.mode != ModeRemote || c.auth == nil {
		return fmt.Errorf("accounts are only available in remote mode")
	}
	return nil
}

// PrintUsage prints the command reference
func PrintUsage(out iocli.IO) {
	out.Println("Stockkeeper Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  stockkeeper [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  -version              Show version information")
	out.Println("  -server URL           Server URL (default: http://localhost:4000)")
	out.Println("  -db PATH              Path to local database (default: stockkeeper-client.db)")
	out.Println("  -mode MODE            remote (server) or local (this machine only)")
	out.Println("  -locale TAG           Locale for sorting and money (default: th-TH)")
	out.Println()
	out.Println("Commands:")
	out.Println("  register [username]   Create an account (remote mode)")
	out.Println("  login [username]      Login to server (remote mode)")
	out.Println("  logout                Logout")
	out.Println("  whoami                Show the logged-in account")
	out.Println("  list [-q TEXT] [-filter all|low|in] [-sort name|qty|cost|value]")
	out.Println("  add [-name N -qty Q -unit U -cost C -low-at L]")
	out.Println("  edit <id> [-name N] [-qty Q] [-unit U] [-cost C] [-low-at L]")
	out.Println("  inc <id>              Add one to quantity")
	out.Println("  dec <id>              Subtract one from quantity")
	out.Println("  delete <id>           Delete an item")
	out.Println("  export [file]         Write items as JSON (stdout by default)")
	out.Println("  import <file>         Add items from a JSON export (local mode)")
	out.Println()
	out.Println("An <id> may be shortened to any unique prefix.")
}
