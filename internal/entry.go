// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/farmtech/fieldbook/internal/catalog"
	"github.com/farmtech/fieldbook/internal/codec"
	"github.com/farmtech/fieldbook/internal/fieldsvc"
	"github.com/farmtech/fieldbook/internal/shell"
	"github.com/farmtech/fieldbook/internal/storage"
	"github.com/farmtech/fieldbook/internal/store"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logs go to stderr; stdout belongs to the menu.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("export_file", cfg.Data.ExportFile),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// The catalog is the only fatal dependency: without it no crop can
	// be entered or imported.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	files, err := storage.NewDir(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	st := store.New()
	svc := fieldsvc.NewService(st, codec.New(cat), files, cfg.Data.ExportFile, logger)
	sh := shell.New(app.stdin, app.stdout, svc, cat)

	logger.Info("Session starting", slog.Int("crop_types", len(cat.CropTypes())))

	if err := sh.Run(ctx); err != nil {
		logger.Error("Session error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Session ended", slog.Int("records", st.Len()))
	return nil
}
