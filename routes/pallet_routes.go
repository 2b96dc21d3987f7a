package routes

import (
	"dispatch-tracker/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupPalletRoutes(api fiber.Router, palletController *controllers.PalletController) {
	if palletController == nil {
		return
	}
	pallets := api.Group("/pallets")

	pallets.Post("/", palletController.CreatePallet)
	pallets.Get("/", palletController.GetActivePallets)
	pallets.Get("/:id", palletController.GetPalletDetails)
	pallets.Post("/:id/boxes", palletController.AddBox)
	pallets.Delete("/:id/boxes/:boxId", palletController.RemoveBox)
	pallets.Delete("/:id", palletController.DeletePallet)
}
