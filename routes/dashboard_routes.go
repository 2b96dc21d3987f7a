package routes

import (
	"dispatch-tracker/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(api fiber.Router, dashboardController *controllers.DashboardController) {
	if dashboardController == nil {
		return
	}
	api.Get("/dashboard", dashboardController.GetDashboard)
}
