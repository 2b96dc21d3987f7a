package controllers

import (
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"

	"github.com/gofiber/fiber/v2"
)

type CatalogController struct {
	repo *repositories.CatalogRepository
}

func NewCatalogController(repo *repositories.CatalogRepository) *CatalogController {
	return &CatalogController{repo: repo}
}

func (c *CatalogController) CreateBrand(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name" validate:"required,max=191"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	brand, err := c.repo.CreateBrand(ctx.UserContext(), input.Name)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Brand created", "data": brand})
}

func (c *CatalogController) GetBrands(ctx *fiber.Ctx) error {
	brands, err := c.repo.ListBrands(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": brands, "total": len(brands)})
}

func (c *CatalogController) DeleteBrand(ctx *fiber.Ctx) error {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	if err := c.repo.DeleteBrand(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Brand deleted"})
}

type modelInput struct {
	BrandID uint                 `json:"brand_id" validate:"required"`
	Name    string               `json:"name" validate:"required"`
	Series  []models.SeriesField `json:"series_config" validate:"required,min=1,max=4,dive"`
}

func (c *CatalogController) CreateModel(ctx *fiber.Ctx) error {
	var input modelInput
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	model, err := c.repo.CreateModel(ctx.UserContext(), input.BrandID, input.Name, input.Series)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Model created", "data": model})
}

func (c *CatalogController) UpdateModel(ctx *fiber.Ctx) error {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	var input modelInput
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}
	model, err := c.repo.UpdateModel(ctx.UserContext(), id, input.BrandID, input.Name, input.Series)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Model updated", "data": model})
}

// GetModels lists models, ?brand_id= filters.
func (c *CatalogController) GetModels(ctx *fiber.Ctx) error {
	list, err := c.repo.ListModels(ctx.UserContext(), uint(ctx.QueryInt("brand_id", 0)))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": list, "total": len(list)})
}

func (c *CatalogController) DeleteModel(ctx *fiber.Ctx) error {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	if err := c.repo.DeleteModel(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Model deleted"})
}
