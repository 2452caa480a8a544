package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/trainplan/internal/cli"
	"github.com/alexanderramin/trainplan/internal/config"
	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/logging"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	app.Bootstrap = func(ctx context.Context, cfg *config.Config, withStore bool) (func() error, error) {
		return wire(ctx, app, cfg, withStore)
	}
	defer app.Close()

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// wire builds the App's services from configuration.
func wire(ctx context.Context, app *cli.App, cfg *config.Config, withStore bool) (func() error, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	dec, err := cfg.Decoder()
	if err != nil {
		return nil, err
	}

	app.Logger = logger
	app.Decoder = dec
	app.Settings = cfg.Settings(dec)
	if isInteractive() {
		app.Prompt = cli.HuhPrompter{}
	}
	if !withStore {
		return nil, nil
	}

	store, err := db.Open(ctx, cfg.Dialect(), cfg.DB.Path, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Dialect(), err)
	}
	logger.Debug("store opened", "driver", cfg.Dialect(), "path", cfg.DB.Path)

	conn := store.Conn()
	observer := service.NewLogUseCaseObserver(logger)
	app.Compile = service.NewCompileService(conn, store.UnitOfWork(), logger, observer)
	app.Schedule = service.NewScheduleService(conn, dec, observer)

	return store.Close, nil
}

func isInteractive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}
