package controllers

import (
	"dispatch-tracker/middleware"
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/services"
	"dispatch-tracker/types"

	"github.com/gofiber/fiber/v2"
)

type DispatchController struct {
	service *services.DispatchService
}

func NewDispatchController(service *services.DispatchService) *DispatchController {
	return &DispatchController{service: service}
}

func (c *DispatchController) DispatchPallets(ctx *fiber.Ctx) error {
	var input struct {
		PalletIDs []types.SnowflakeID `json:"pallet_ids" validate:"required,min=1"`
		SapExitID string              `json:"sap_exit_id" validate:"required"`
		Notes     *string             `json:"notes"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}

	results, err := c.service.DispatchPallets(ctx.UserContext(), input.PalletIDs, input.SapExitID, input.Notes, middleware.CurrentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	dispatched := 0
	for _, res := range results {
		if res.Success {
			dispatched++
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": dispatched > 0,
		"message": "Pallet dispatch processed",
		"data":    fiber.Map{"results": results, "dispatched": dispatched},
	})
}

func (c *DispatchController) DispatchBoxes(ctx *fiber.Ctx) error {
	var input struct {
		BoxIDs    []types.SnowflakeID `json:"box_ids" validate:"required,min=1"`
		SapExitID string              `json:"sap_exit_id" validate:"required"`
		Type      models.DispatchType `json:"type"`
		Notes     *string             `json:"notes"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}

	dispatch, err := c.service.DispatchBoxes(ctx.UserContext(), input.BoxIDs, input.SapExitID, input.Type, input.Notes, middleware.CurrentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Boxes dispatched", "data": dispatch})
}

// GetHistory lists dispatches, ?page=&limit=&search= on sap_exit_id.
func (c *DispatchController) GetHistory(ctx *fiber.Ctx) error {
	q := repositories.DispatchQuery{
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
		Search: ctx.Query("search"),
	}
	list, total, err := c.service.History(ctx.UserContext(), q)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    list,
		"total":   total,
		"page":    q.Page,
	})
}

func (c *DispatchController) GetDispatch(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	dispatch, err := c.service.Details(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": dispatch})
}
