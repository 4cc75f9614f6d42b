package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/salesadmin/internal/config"
	"github.com/JonMunkholm/salesadmin/internal/migrations"
	"github.com/JonMunkholm/salesadmin/internal/store"
	"github.com/spf13/cobra"
)

type migrateAction int

const (
	migrateUp migrateAction = iota
	migrateDown
	migrateVersion
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	action := func(a migrateAction) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, a)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: action(migrateUp)},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", RunE: action(migrateDown)},
		&cobra.Command{Use: "version", Short: "Print the applied schema version", RunE: action(migrateVersion)},
	)
	return cmd
}

// runMigrations opens a runner for the configured driver and applies a.
func runMigrations(ctx context.Context, cfg *config.Config, a migrateAction) error {
	runner, err := openRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	switch a {
	case migrateUp:
		if err := runner.Up(); err != nil {
			return err
		}
		slog.Info("migrations applied")
	case migrateDown:
		if err := runner.Down(); err != nil {
			return err
		}
		slog.Info("migrations rolled back")
	case migrateVersion:
		version, dirty, ok, err := runner.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	}
	return nil
}

func openRunner(ctx context.Context, cfg *config.Config) (*migrations.Runner, error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case store.DriverSQLite:
		// The runner owns the handle and closes it.
		gw, err := store.OpenSQLite(ctx, strings.TrimPrefix(cfg.Database.URL, "sqlite://"))
		if err != nil {
			return nil, err
		}
		runner, err := migrations.NewSQLite(gw.DB())
		if err != nil {
			gw.Close()
			return nil, err
		}
		return runner, nil
	default:
		return migrations.NewPostgres(cfg.Database.URL)
	}
}
