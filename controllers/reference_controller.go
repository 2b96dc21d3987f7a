package controllers

import (
	"log/slog"

	"dispatch-tracker/metrics"
	"dispatch-tracker/repositories"

	"github.com/gofiber/fiber/v2"
)

type ReferenceController struct {
	repo    *repositories.ReferenceRepository
	metrics *metrics.ScanMetrics
	logger  *slog.Logger
}

func NewReferenceController(repo *repositories.ReferenceRepository, m *metrics.ScanMetrics, logger *slog.Logger) *ReferenceController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceController{repo: repo, metrics: m, logger: logger.With("component", "reference")}
}

// ReplaceReferences swaps the whole ERP dataset for the posted records.
func (c *ReferenceController) ReplaceReferences(ctx *fiber.Ctx) error {
	var input struct {
		Records []repositories.ReferenceRecord `json:"records" validate:"required"`
	}
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}

	n, err := c.repo.Replace(ctx.UserContext(), input.Records)
	c.metrics.RecordReferenceReplace(n, err)
	if err != nil {
		c.logger.Warn("reference replace failed", "records", len(input.Records), "error", err)
		return respondError(ctx, err)
	}
	c.logger.Info("reference dataset replaced", "rows", n, "skipped", len(input.Records)-n)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Reference data replaced",
		"data":    fiber.Map{"inserted": n, "skipped": len(input.Records) - n},
	})
}

func (c *ReferenceController) ClearReferences(ctx *fiber.Ctx) error {
	n, err := c.repo.Clear(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	c.metrics.RecordReferenceReplace(0, nil)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reference data cleared", "data": fiber.Map{"deleted": n}})
}

func (c *ReferenceController) CountReferences(ctx *fiber.Ctx) error {
	n, err := c.repo.Count(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"total": n}})
}
