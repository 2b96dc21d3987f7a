package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dispatch-tracker/config"
	"dispatch-tracker/idgen"
	"dispatch-tracker/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func serveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)

			if err := idgen.Init(cfg.SnowflakeNode); err != nil {
				return fmt.Errorf("snowflake node %d: %w", cfg.SnowflakeNode, err)
			}

			db, err := openMigrated(cfg, logger)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			app, err := routes.NewApp(cfg, db, logger, registry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Info("shutting down")
				_ = app.Shutdown()
			}()

			logger.Info("🚀 Server berjalan", "port", cfg.AppPort, "db_driver", cfg.DBDriver)
			return app.Listen(":" + cfg.AppPort)
		},
	}
}
