package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/collate"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/iudanet/stockkeeper/internal/client/api"
	"github.com/iudanet/stockkeeper/internal/client/app"
	"github.com/iudanet/stockkeeper/internal/client/auth"
	"github.com/iudanet/stockkeeper/internal/client/backend"
	"github.com/iudanet/stockkeeper/internal/client/cli"
	"github.com/iudanet/stockkeeper/internal/client/iocli"
	"github.com/iudanet/stockkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/stockkeeper/internal/client/view"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:4000", "Server URL")
	dbPath := flag.String("db", "stockkeeper-client.db", "Path to local database")
	modeFlag := flag.String("mode", string(cli.ModeRemote), "Storage mode: remote or local")
	locale := flag.String("locale", "th-TH", "Locale for sorting and money formatting")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := options{
		serverURL: *serverURL,
		dbPath:    *dbPath,
		mode:      *modeFlag,
		locale:    *locale,
	}
	if err := run(logger, stdio, opts, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(stdio)
		}
		os.Exit(1)
	}
}

type options struct {
	serverURL string
	dbPath    string
	mode      string
	locale    string
}

func run(logger *slog.Logger, stdio iocli.IO, opts options, command string, args []string) error {
	mode, err := cli.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	tag, err := language.Parse(opts.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", opts.locale, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", slog.Any("error", err))
		}
	}()

	var (
		b           backend.Backend
		authService auth.SessionService
	)
	switch mode {
	case cli.ModeRemote:
		client, err := api.NewClient(opts.serverURL)
		if err != nil {
			return err
		}
		b = backend.NewRemote(client)
		authService = auth.NewService(logger, client, store)
	case cli.ModeLocal:
		b = backend.NewLocal(logger, store)
	}

	inventory := app.NewInventory(b, collate.New(tag))
	c := cli.New(stdio, mode, inventory, authService, view.NewMoney(tag, currencyFor(tag)))
	return c.Run(ctx, command, args)
}

// currencyFor picks the currency of the locale's region, baht if unknown
func currencyFor(tag language.Tag) currency.Unit {
	if unit, conf := currency.FromTag(tag); conf != language.No {
		return unit
	}
	return currency.THB
}

func printVersion() {
	fmt.Printf("Stockkeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
