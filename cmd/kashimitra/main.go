package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/kashimitra/internal/cli"
	"github.com/alexanderramin/kashimitra/internal/config"
	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/alexanderramin/kashimitra/internal/db"
	"github.com/alexanderramin/kashimitra/internal/intelligence"
	"github.com/alexanderramin/kashimitra/internal/llm"
	"github.com/alexanderramin/kashimitra/internal/logging"
	"github.com/alexanderramin/kashimitra/internal/repository"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	cleanup, err := logging.Setup(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()
	logger := slog.Default()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := credential.NewKVStore(repository.NewSQLiteKVRepo(database))

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(logger)
	}

	resolver := intelligence.NewResolver(
		store,
		intelligence.NewSimulated(cfg.SimulatedDelay),
		intelligence.NewRemote(llm.NewGeminiClient(cfg.LLM, observer)),
		logger,
	)

	app := cli.NewApp(resolver, store)
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("startup", "db", cfg.DBPath, "model", cfg.LLM.Model, "strategy", string(resolver.Strategy(ctx)))

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
