package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/services"
)

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input deleteAccountInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	err := handler.profileService.DeleteAccount(c.UserContext(), user.ID, input.Password)
	switch {
	case errors.Is(err, services.ErrAccountDeletePasswordMissing):
		return apiError(c, fiber.StatusBadRequest, "password is required")
	case errors.Is(err, services.ErrAccountDeletePasswordIncorrect):
		return apiError(c, fiber.StatusUnauthorized, "incorrect password")
	case err != nil:
		return handler.respondInternalError(c, "delete account", err, nil)
	}

	handler.logger.WithField("user_id", user.ID).Info("account deleted")
	return apiMessage(c, "account deleted successfully")
}
