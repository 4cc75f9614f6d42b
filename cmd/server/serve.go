package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/salesadmin/internal/config"
	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/JonMunkholm/salesadmin/internal/export"
	"github.com/JonMunkholm/salesadmin/internal/migrations"
	"github.com/JonMunkholm/salesadmin/internal/store"
	"github.com/JonMunkholm/salesadmin/internal/web"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"db_max_conns", cfg.Database.MaxConns,
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	handle, err := store.Open(ctx, storeOptions(cfg))
	if err != nil {
		return err
	}
	defer handle.Close()
	slog.Info("connected to database", "driver", handle.Driver)

	if cfg.Migrate.OnStart {
		if err := migrateOnStart(ctx, cfg, handle); err != nil {
			return err
		}
	}

	service := core.NewService(handle.Gateway, core.ServiceConfig{
		DefaultPageSize: cfg.Pagination.DefaultLimit,
		BcryptCost:      cfg.Security.BcryptCost,
	})
	exporter := export.NewExporter(export.Options{
		Title:         cfg.Export.Title,
		DatePrefix:    cfg.Export.DatePrefix,
		MaxConcurrent: cfg.Export.MaxConcurrent,
		MaxWait:       cfg.Export.MaxWaitTime,
	})

	slog.Info("entities registered",
		"count", core.EntityCount(),
		"option_lists", len(core.OptionNames()),
	)

	server := web.NewServer(service, exporter, cfg)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-sigCtx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Wait for in-flight exports before closing connections
	if status := exporter.Status(); status.Active > 0 {
		slog.Info("waiting for exports to complete", "active", status.Active)
		if err := exporter.WaitForDrain(shutdownCtx); err != nil {
			slog.Warn("exports did not complete in time", "error", err)
		} else {
			slog.Info("all exports completed")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

// migrateOnStart applies pending migrations. SQLite migrates through the
// open handle so an in-memory database keeps its schema.
func migrateOnStart(ctx context.Context, cfg *config.Config, handle *store.Handle) error {
	lite := handle.SQLite()
	if lite == nil {
		return runMigrations(ctx, cfg, migrateUp)
	}
	// Closing this runner would close the shared handle.
	runner, err := migrations.NewSQLite(lite.DB())
	if err != nil {
		return err
	}
	if err := runner.Up(); err != nil {
		return err
	}
	slog.Info("migrations applied")
	return nil
}

func storeOptions(cfg *config.Config) store.Options {
	db := cfg.Database
	return store.Options{
		Driver: db.Driver,
		URL:    db.URL,
		Pool: store.PoolConfig{
			MaxConns:        db.MaxConns,
			MinConns:        db.MinConns,
			MaxConnLifetime: db.MaxConnLifetime,
			MaxConnIdleTime: db.MaxConnIdleTime,
			AcquireTimeout:  db.AcquireTimeout,
		},
	}
}
