package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/vitalog/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func apiMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}

// respondInternalError logs err with the request context and answers 500.
// The client never sees the underlying error text.
func (handler *Handler) respondInternalError(c *fiber.Ctx, op string, err error, fields logrus.Fields) error {
	entry := handler.logger.WithFields(logrus.Fields{
		"op":     op,
		"method": c.Method(),
		"path":   c.Path(),
	})
	if user, ok := currentUser(c); ok && user != nil {
		entry = entry.WithField("user_id", user.ID)
	}
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}

	var storageErr *services.StorageError
	if errors.As(err, &storageErr) {
		entry = entry.WithField("storage_op", storageErr.Op)
	}
	entry.WithError(err).Error("request failed")

	return apiError(c, fiber.StatusInternalServerError, "internal server error")
}
