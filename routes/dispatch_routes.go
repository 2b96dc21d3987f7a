package routes

import (
	"dispatch-tracker/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupDispatchRoutes(api fiber.Router, dispatchController *controllers.DispatchController) {
	if dispatchController == nil {
		return
	}
	dispatches := api.Group("/dispatches")

	dispatches.Get("/", dispatchController.GetHistory)
	dispatches.Get("/:id", dispatchController.GetDispatch)
	dispatches.Post("/pallets", dispatchController.DispatchPallets)
	dispatches.Post("/boxes", dispatchController.DispatchBoxes)
}
