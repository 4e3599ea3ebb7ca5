package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, claims, err := handler.authenticateRequest(c)
	switch {
	case err == nil:
	case errors.Is(err, errRevokedToken):
		return apiError(c, fiber.StatusUnauthorized, "token expired, please login again")
	case errors.Is(err, errMissingBearerToken):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, errInvalidToken):
		return apiError(c, fiber.StatusUnauthorized, "invalid token")
	default:
		return handler.respondInternalError(c, "authenticate request", err, nil)
	}

	c.Locals(contextUserKey, user)
	c.Locals(contextClaimsKey, claims)
	return c.Next()
}
