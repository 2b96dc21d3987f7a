package controllers

import (
	"time"

	"dispatch-tracker/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

const statsCacheKey = "dashboard:stats"

type DashboardController struct {
	repo  *repositories.DashboardRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewDashboardController(repo *repositories.DashboardRepository, ttl time.Duration) *DashboardController {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &DashboardController{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	if cached, ok := c.cache.Get(statsCacheKey); ok {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Dashboard found", "data": cached, "cached": true})
	}

	stats, err := c.repo.Stats(ctx.UserContext(), time.Now())
	if err != nil {
		return respondError(ctx, err)
	}
	c.cache.Set(statsCacheKey, stats, c.ttl)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Dashboard found", "data": stats, "cached": false})
}

// Invalidate drops the cached stats once a write handler has run.
func (c *DashboardController) Invalidate(ctx *fiber.Ctx) error {
	err := ctx.Next()
	if ctx.Method() != fiber.MethodGet {
		c.cache.Delete(statsCacheKey)
	}
	return err
}
