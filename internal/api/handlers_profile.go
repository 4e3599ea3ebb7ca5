package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondInternalError(c, "get profile", err, nil)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfileName(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input updateNameInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	fullName, err := handler.profileService.UpdateFullName(c.UserContext(), user.ID, input.FullName)
	if errors.Is(err, services.ErrProfileNameInvalid) {
		return apiError(c, fiber.StatusBadRequest, "full name must be 1 to 100 characters")
	}
	if err != nil {
		return handler.respondInternalError(c, "update profile name", err, nil)
	}

	return c.JSON(fiber.Map{
		"message":   "name updated successfully",
		"full_name": fullName,
	})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	err := handler.profileService.ChangePassword(c.UserContext(), user.ID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
	if status, message, ok := passwordChangeErrorResponse(err); ok {
		return apiError(c, status, message)
	}
	if err != nil {
		return handler.respondInternalError(c, "change password", err, nil)
	}
	return apiMessage(c, "password updated successfully")
}

func passwordChangeErrorResponse(err error) (int, string, bool) {
	switch {
	case err == nil:
		return 0, "", false
	case errors.Is(err, services.ErrPasswordChangeInvalidInput):
		return fiber.StatusBadRequest, "current, new and confirm password are required", true
	case errors.Is(err, services.ErrPasswordChangeMismatch):
		return fiber.StatusBadRequest, "passwords do not match", true
	case errors.Is(err, services.ErrPasswordChangeInvalidCurrent):
		return fiber.StatusUnauthorized, "current password is incorrect", true
	case errors.Is(err, services.ErrPasswordChangeNewMustDiffer):
		return fiber.StatusBadRequest, "new password must differ from the current one", true
	case errors.Is(err, services.ErrWeakPassword):
		return fiber.StatusBadRequest, err.Error(), true
	default:
		return 0, "", false
	}
}
