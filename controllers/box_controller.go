package controllers

import (
	"dispatch-tracker/middleware"
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"

	"github.com/gofiber/fiber/v2"
)

type BoxController struct {
	repo *repositories.BoxRepository
}

func NewBoxController(repo *repositories.BoxRepository) *BoxController {
	return &BoxController{repo: repo}
}

func (c *BoxController) CreateBox(ctx *fiber.Ctx) error {
	var input struct {
		ModelID    uint `json:"model_id" validate:"required"`
		TotalItems int  `json:"total_items" validate:"required,gte=1"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}

	box := &models.Box{
		ModelID:    input.ModelID,
		TotalItems: input.TotalItems,
		CreatedBy:  middleware.CurrentUserID(ctx),
	}
	if err := c.repo.Create(ctx.UserContext(), box); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Box created", "data": box})
}

func (c *BoxController) DuplicateBox(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	box, err := c.repo.Duplicate(ctx.UserContext(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Box duplicated", "data": box})
}

// GetBoxes lists boxes; ?status=open|closed|dispatched filters.
func (c *BoxController) GetBoxes(ctx *fiber.Ctx) error {
	status := models.BoxStatus(ctx.Query("status"))
	switch status {
	case "", models.BoxOpen, models.BoxClosed, models.BoxDispatched:
	default:
		return badRequest(ctx, "invalid status")
	}
	boxes, err := c.repo.List(ctx.UserContext(), status, ctx.QueryInt("limit", 0))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": boxes, "total": len(boxes)})
}

func (c *BoxController) GetOpenBoxes(ctx *fiber.Ctx) error {
	boxes, err := c.repo.ListOpen(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": boxes, "total": len(boxes)})
}

func (c *BoxController) CountBoxes(ctx *fiber.Ctx) error {
	count, err := c.repo.Count(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"total": count}})
}

func (c *BoxController) GetBoxDetails(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	box, err := c.repo.Details(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": box})
}

func (c *BoxController) UpdateQuantity(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	var input struct {
		TotalItems int `json:"total_items" validate:"required,gte=1"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.repo.UpdateQuantity(ctx.UserContext(), id, input.TotalItems); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box quantity updated"})
}

func (c *BoxController) UpdateBox(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	var input struct {
		ModelID    uint `json:"model_id"`
		TotalItems int  `json:"total_items" validate:"required,gte=1"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.repo.Update(ctx.UserContext(), id, input.ModelID, input.TotalItems); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box updated"})
}

func (c *BoxController) CloseBox(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	box, err := c.repo.Close(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box closed", "data": box})
}

func (c *BoxController) DeleteBox(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	if err := c.repo.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box deleted"})
}
