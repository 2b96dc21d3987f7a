package routes

import (
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupBoxRoutes(api fiber.Router, boxController *controllers.BoxController) {
	if boxController == nil {
		return
	}
	boxes := api.Group("/boxes")

	boxes.Post("/", boxController.CreateBox)
	boxes.Get("/", boxController.GetBoxes)
	boxes.Get("/open", boxController.GetOpenBoxes)
	boxes.Get("/count", boxController.CountBoxes)
	boxes.Get("/:id", boxController.GetBoxDetails)
	boxes.Post("/:id/duplicate", boxController.DuplicateBox)
	boxes.Put("/:id/quantity", boxController.UpdateQuantity)
	boxes.Post("/:id/close", boxController.CloseBox)
	boxes.Put("/:id", middleware.RequireAdmin(), boxController.UpdateBox)
	boxes.Delete("/:id", middleware.RequireAdmin(), boxController.DeleteBox)
}
