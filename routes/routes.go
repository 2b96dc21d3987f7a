package routes

import (
	"dispatch-tracker/config"
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	Scan      *controllers.ScanController
	Box       *controllers.BoxController
	Reference *controllers.ReferenceController
	Pallet    *controllers.PalletController
	Dispatch  *controllers.DispatchController
	Catalog   *controllers.CatalogController
	User      *controllers.UserController
	Dashboard *controllers.DashboardController
}

// SetupRoutes registers every API group under cfg.MainRoutes behind the JWT
// middleware, plus the unauthenticated /health and /metrics.
func SetupRoutes(app *fiber.App, cfg *config.Config, c Controllers, gatherer prometheus.Gatherer) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"success": true, "message": "ok"})
	})
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group(cfg.MainRoutes, middleware.AuthMiddleware(cfg.JWTSecret))
	if c.Dashboard != nil {
		api.Use(c.Dashboard.Invalidate)
	}

	SetupScanRoutes(api, c.Scan)
	SetupBoxRoutes(api, c.Box)
	SetupReferenceRoutes(api, c.Reference)
	SetupPalletRoutes(api, c.Pallet)
	SetupDispatchRoutes(api, c.Dispatch)
	SetupCatalogRoutes(api, c.Catalog)
	SetupUserRoutes(api, c.User)
	SetupDashboardRoutes(api, c.Dashboard)
}
