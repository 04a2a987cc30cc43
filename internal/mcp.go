package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/ehwaz/internal/confirm"
	"github.com/starford/ehwaz/internal/engine"
	"github.com/starford/ehwaz/internal/index"
	"github.com/starford/ehwaz/internal/mcpserver"
	"github.com/starford/ehwaz/internal/profile"
	"github.com/starford/ehwaz/internal/refs"
	"github.com/starford/ehwaz/internal/storage"
)

// RunMCP starts the MCP stdio server against the same vault, registry,
// and embed index the HTTP server uses. Stdout carries the MCP
// transport, so logs go to stderr.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	live := profile.DetectLiveIdentity(store.Root())
	registry, err := profile.NewRegistry(profile.NewYAMLStore(cfg.Settings.Path), live, logger)
	if err != nil {
		return fmt.Errorf("init profile registry: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// MCP has no confirmation channel back to a user, so bulk rewrites
	// are not exposed as a tool; the rewriter is still wired with a
	// declining confirmer to keep the engine surface complete.
	eng := engine.New(engine.Config{
		Store:    store,
		Registry: registry,
		Indexer:  refs.NewIndexer(store, db, logger),
		Rewriter: refs.NewRewriter(store, confirm.Static{Answer: false}, logger),
		Logger:   logger,
	})

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(eng).ServeStdio()
}
