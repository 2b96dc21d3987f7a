package controllers

import (
	"dispatch-tracker/middleware"
	"dispatch-tracker/repositories"
	"dispatch-tracker/types"

	"github.com/gofiber/fiber/v2"
)

type PalletController struct {
	repo *repositories.PalletRepository
}

func NewPalletController(repo *repositories.PalletRepository) *PalletController {
	return &PalletController{repo: repo}
}

func (c *PalletController) CreatePallet(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name" validate:"max=100"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	pallet, err := c.repo.Create(ctx.UserContext(), input.Name, middleware.CurrentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Pallet created", "data": pallet})
}

func (c *PalletController) GetActivePallets(ctx *fiber.Ctx) error {
	pallets, err := c.repo.ListActive(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": pallets, "total": len(pallets)})
}

func (c *PalletController) GetPalletDetails(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	pallet, err := c.repo.Details(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": pallet})
}

func (c *PalletController) AddBox(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	var input struct {
		BoxID types.SnowflakeID `json:"box_id" validate:"required"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.repo.AddBox(ctx.UserContext(), id, input.BoxID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box added to pallet"})
}

func (c *PalletController) RemoveBox(ctx *fiber.Ctx) error {
	boxID, ok := snowflakeParam(ctx, "boxId")
	if !ok {
		return badRequest(ctx, "invalid boxId")
	}
	if err := c.repo.RemoveBox(ctx.UserContext(), boxID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Box removed from pallet"})
}

func (c *PalletController) DeletePallet(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	if err := c.repo.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pallet deleted"})
}
