package routes

import (
	"dispatch-tracker/controllers"
	"dispatch-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, userController *controllers.UserController) {
	if userController == nil {
		return
	}
	api.Get("/user/profile", userController.GetProfile)

	users := api.Group("/users", middleware.RequireAdmin())
	users.Get("/", userController.GetAllUsers)
	users.Post("/", userController.CreateUser)
	users.Put("/:id/role", userController.UpdateRole)
}
