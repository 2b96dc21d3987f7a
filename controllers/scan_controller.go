package controllers

import (
	"strings"

	"dispatch-tracker/middleware"
	"dispatch-tracker/repositories"
	"dispatch-tracker/services/scan"
	"dispatch-tracker/types"

	"github.com/gofiber/fiber/v2"
)

type ScanController struct {
	pipeline *scan.Pipeline
	repo     *repositories.ScanRepository
}

func NewScanController(pipeline *scan.Pipeline, repo *repositories.ScanRepository) *ScanController {
	return &ScanController{pipeline: pipeline, repo: repo}
}

type scanInput struct {
	BoxID  types.SnowflakeID `json:"box_id" validate:"required"`
	Series map[string]string `json:"series" validate:"required"`
}

// Scan runs one unit through the validation pipeline.
func (c *ScanController) Scan(ctx *fiber.Ctx) error {
	var input scanInput
	if err := parseBody(ctx, &input); err != nil {
		return badRequest(ctx, err.Error())
	}

	res := c.pipeline.Scan(ctx.UserContext(), scan.Request{
		BoxID:      input.BoxID,
		OperatorID: middleware.CurrentUserID(ctx),
		Series:     input.Series,
	})

	switch res.Outcome {
	case scan.OutcomeSuccess:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":       true,
			"message":       res.Message,
			"matched_field": res.MatchedField,
			"data":          res.Equipment,
		})
	case scan.OutcomeWarning:
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"warning": res.Message,
			"reason":  res.Reason,
			"data":    fiber.Map{"tried": res.Tried},
		})
	}

	body := fiber.Map{
		"success": false,
		"error":   res.Message,
		"reason":  res.Reason,
	}
	if res.Conflict != nil {
		body["data"] = res.Conflict
	}
	return ctx.Status(scanStatus(res.Reason)).JSON(body)
}

func scanStatus(reason scan.Reason) int {
	switch reason {
	case scan.ReasonBoxNotFound:
		return fiber.StatusNotFound
	case scan.ReasonBoxNotOpen, scan.ReasonBoxFull, scan.ReasonGlobalDuplicate:
		return fiber.StatusConflict
	case scan.ReasonInvalidInput, scan.ReasonLocalDuplicate:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// DeleteEquipment removes a scanned unit and frees its serials.
func (c *ScanController) DeleteEquipment(ctx *fiber.Ctx) error {
	id, ok := snowflakeParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "invalid id")
	}
	if err := c.repo.DeleteEquipment(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Equipment deleted"})
}

func (c *ScanController) SearchEquipment(ctx *fiber.Ctx) error {
	query := strings.TrimSpace(ctx.Query("q"))
	if len(query) < 2 {
		return badRequest(ctx, "query must have at least 2 characters")
	}
	hits, err := c.repo.Search(ctx.UserContext(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": hits, "total": len(hits)})
}
