package routes

import (
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupScanRoutes(api fiber.Router, scanController *controllers.ScanController) {
	if scanController == nil {
		return
	}
	api.Post("/scan", scanController.Scan)

	equipment := api.Group("/equipment")
	equipment.Get("/search", scanController.SearchEquipment)
	equipment.Delete("/:id", middleware.RequireAdmin(), scanController.DeleteEquipment)
}
