package cmd

import (
	"dispatch-tracker/config"

	"github.com/spf13/cobra"
)

func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and migrate the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)
			if _, err := openMigrated(cfg, logger); err != nil {
				return err
			}
			logger.Info("migration complete", "db_driver", cfg.DBDriver)
			return nil
		},
	}
}
