package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/config"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/engine"
	"github.com/alexanderramin/tempo/internal/loop"
	"github.com/alexanderramin/tempo/internal/metrics"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/settings"
	"github.com/alexanderramin/tempo/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	set := settings.NewSQLiteStore(database)
	st := store.New(set, logger)
	analyzer := metrics.NewAnalyzer(st, nil)

	var notifier notify.Notifier = notify.NewSlog(logger)
	if cfg.Telegram.Enabled {
		telegram, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			return fmt.Errorf("configuring telegram notifier: %w", err)
		}
		notifier = notify.Fanout{notifier, telegram}
	}

	eng := engine.New(st, set, analyzer, analyzer, notifier, logger)
	if err := eng.Restore(context.Background()); err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	if cfg.Learn.Enabled {
		runner, err := loop.New(cfg.Learn.Spec, eng.RunLearningCycle, logger)
		if err != nil {
			return fmt.Errorf("configuring learning loop: %w", err)
		}
		runner.Start()
		defer runner.Stop()
	}

	app := &cli.App{Engine: eng}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
