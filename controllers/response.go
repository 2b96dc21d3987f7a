package controllers

import (
	"errors"
	"strconv"

	"dispatch-tracker/repositories"
	"dispatch-tracker/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseBody decodes the request body into dst and validates it.
// An empty body leaves dst untouched.
func parseBody(ctx *fiber.Ctx, dst interface{}) error {
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(dst); err != nil {
			return err
		}
	}
	return validate.Struct(dst)
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": message})
}

// respondError maps repository errors onto HTTP status codes.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate), errors.Is(err, repositories.ErrInvalidState):
		status = fiber.StatusConflict
	case errors.Is(err, repositories.ErrNoReferenceRecords):
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

func snowflakeParam(ctx *fiber.Ctx, name string) (types.SnowflakeID, bool) {
	id, err := types.ParseSnowflakeID(ctx.Params(name))
	return id, err == nil && id > 0
}

func uintParam(ctx *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	return uint(id), err == nil && id > 0
}
