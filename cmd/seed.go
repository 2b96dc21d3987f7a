package cmd

import (
	"dispatch-tracker/config"
	"dispatch-tracker/database"

	"github.com/spf13/cobra"
)

func seedCommand(cfg *config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, brands and models from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)

			seed, err := database.LoadSeedFile(file)
			if err != nil {
				return err
			}
			db, err := openMigrated(cfg, logger)
			if err != nil {
				return err
			}
			if err := database.RunSeeders(db, seed); err != nil {
				return err
			}
			logger.Info("seed complete", "file", file, "users", len(seed.Users), "brands", len(seed.Brands))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Seed file")
	return cmd
}
