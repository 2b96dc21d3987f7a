package routes

import (
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(api fiber.Router, catalogController *controllers.CatalogController) {
	if catalogController == nil {
		return
	}
	brands := api.Group("/brands")
	brands.Get("/", catalogController.GetBrands)
	brands.Post("/", middleware.RequireAdmin(), catalogController.CreateBrand)
	brands.Delete("/:id", middleware.RequireAdmin(), catalogController.DeleteBrand)

	productModels := api.Group("/models")
	productModels.Get("/", catalogController.GetModels)
	productModels.Post("/", middleware.RequireAdmin(), catalogController.CreateModel)
	productModels.Put("/:id", middleware.RequireAdmin(), catalogController.UpdateModel)
	productModels.Delete("/:id", middleware.RequireAdmin(), catalogController.DeleteModel)
}
