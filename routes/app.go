package routes

import (
	"fmt"
	"log/slog"

	"dispatch-tracker/config"
	"dispatch-tracker/controllers"
	"dispatch-tracker/metrics"
	"dispatch-tracker/repositories"
	"dispatch-tracker/services"
	"dispatch-tracker/services/scan"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and controllers onto a fiber app.
// registry may be nil, in which case metrics are neither collected nor served.
func NewApp(cfg *config.Config, db *gorm.DB, logger *slog.Logger, registry *prometheus.Registry) (*fiber.App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		scanMetrics *metrics.ScanMetrics
		gatherer    prometheus.Gatherer
	)
	if registry != nil {
		m, err := metrics.NewScanMetrics(registry)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		scanMetrics = m
		gatherer = registry
	}

	scanRepo := repositories.NewScanRepository(db)
	boxRepo := repositories.NewBoxRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db, cfg.ReferenceBatchSize)
	palletRepo := repositories.NewPalletRepository(db)
	dispatchRepo := repositories.NewDispatchRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	userRepo := repositories.NewUserRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	pipeline := scan.NewPipeline(scanRepo, scan.Options{
		Priority: cfg.SeriesPriority,
		Logger:   logger,
		Metrics:  scanMetrics,
	})
	dispatchService := services.NewDispatchService(dispatchRepo, userRepo, services.NewMailNotifierFromConfig(cfg), logger)
	userService := services.NewUserService(userRepo)

	app := fiber.New(fiber.Config{AppName: "dispatch-tracker"})
	config.SetupCORS(app, cfg)

	SetupRoutes(app, cfg, Controllers{
		Scan:      controllers.NewScanController(pipeline, scanRepo),
		Box:       controllers.NewBoxController(boxRepo),
		Reference: controllers.NewReferenceController(referenceRepo, scanMetrics, logger),
		Pallet:    controllers.NewPalletController(palletRepo),
		Dispatch:  controllers.NewDispatchController(dispatchService),
		Catalog:   controllers.NewCatalogController(catalogRepo),
		User:      controllers.NewUserController(userService),
		Dashboard: controllers.NewDashboardController(dashboardRepo, cfg.StatsCacheTTL),
	}, gatherer)

	return app, nil
}
