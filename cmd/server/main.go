// Command salesadmin serves the sales admin API and manages its schema.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/salesadmin/internal/config"
	_ "github.com/JonMunkholm/salesadmin/internal/core/tables" // Register all entities
	"github.com/JonMunkholm/salesadmin/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "salesadmin",
	Short:         "Sales admin API server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd(), migrateCmd(), entitiesCmd(), resetCmd())
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration, then configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration", "config", cfg.String())
	return cfg, nil
}
