package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/db"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports 503 until the database answers a ping.
func (handler *Handler) Ready(c *fiber.Ctx) error {
	sqlDB, err := handler.db.DB()
	if err == nil {
		err = db.Ping(c.UserContext(), sqlDB)
	}
	if err != nil {
		handler.logger.WithError(err).Warn("readiness check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
