package controllers

import (
	"dispatch-tracker/middleware"
	"dispatch-tracker/models"
	"dispatch-tracker/services"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var userInput struct {
		Email string      `json:"email" validate:"required,email"`
		Name  string      `json:"name" validate:"required,min=3"`
		Role  models.Role `json:"role"`
	}
	if err := parseBody(ctx, &userInput); err != nil {
		return badRequest(ctx, err.Error())
	}

	user := &models.User{Email: userInput.Email, Name: userInput.Name, Role: userInput.Role}
	if err := c.service.CreateUser(ctx.UserContext(), user); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "User created successfully", "data": user})
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.service.GetAllUsers(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": users, "total": len(users)})
}

func (c *UserController) UpdateRole(ctx *fiber.Ctx) error {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	var input struct {
		Role models.Role `json:"role" validate:"required"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if !input.Role.Valid() {
		return badRequest(ctx, "invalid role")
	}
	// only a super_admin hands out super_admin
	if input.Role == models.RoleSuperAdmin && middleware.CurrentRole(ctx) != models.RoleSuperAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Forbidden: You do not have permission"})
	}

	user, err := c.service.UpdateRole(ctx.UserContext(), id, input.Role)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Role updated", "data": user})
}

func (c *UserController) GetProfile(ctx *fiber.Ctx) error {
	user, err := c.service.GetUserByID(ctx.UserContext(), middleware.CurrentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}
