// Package cmd holds the dispatch-tracker command line.
package cmd

import (
	"log/slog"
	"os"

	"dispatch-tracker/config"
	"dispatch-tracker/database"
	"dispatch-tracker/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootCommand builds the CLI. Flags override values loaded from the
// environment.
func RootCommand() *cobra.Command {
	cfg := config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:           "dispatch-tracker",
		Short:         "Warehouse dispatch tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.AppPort, "port", cfg.AppPort, "HTTP listen port")
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Database driver: postgres, mysql, mssql or sqlite")
	flags.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database file")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		seedCommand(cfg),
		tokenCommand(cfg),
	)
	return rootCmd
}

func Execute() {
	if err := RootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// openMigrated makes sure the database exists, connects and migrates it.
func openMigrated(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if err := database.EnsureDatabaseExists(cfg, logger); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
