package routes

import (
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReferenceRoutes(api fiber.Router, referenceController *controllers.ReferenceController) {
	if referenceController == nil {
		return
	}
	refs := api.Group("/reference")

	refs.Get("/count", referenceController.CountReferences)
	refs.Post("/", middleware.RequireAdmin(), referenceController.ReplaceReferences)
	refs.Delete("/", middleware.RequireAdmin(), referenceController.ClearReferences)
}
