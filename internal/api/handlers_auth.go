package api

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(c.UserContext(), services.RegistrationInput{
		FullName:        input.FullName,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		handler.metrics.RecordAuthEvent("register", "rejected")
		switch {
		case errors.Is(err, services.ErrRegistrationInvalidInput):
			return apiError(c, fiber.StatusBadRequest, "full name, valid email and password are required")
		case errors.Is(err, services.ErrRegistrationPasswordMismatch):
			return apiError(c, fiber.StatusBadRequest, "passwords do not match")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, "email already registered")
		default:
			return handler.respondInternalError(c, "register", err, nil)
		}
	}

	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.respondInternalError(c, "sign token", err, nil)
	}
	handler.metrics.RecordAuthEvent("register", "success")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user_id": user.ID,
		"token":   token,
	})
}

// Login counts failed attempts per client address and refuses further
// attempts once the window is full, even with correct credentials.
func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := clientIPKey(c)
	now := time.Now()
	if wait := handler.loginLimiter.retryAfter(limiterKey, now, loginFailureLimit, loginFailureWindow); wait > 0 {
		handler.metrics.RecordAuthEvent("login", "throttled")
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many failed login attempts, try again later")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(c.UserContext(), input.Email, input.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.recordFailure(limiterKey, now, loginFailureWindow)
		handler.metrics.RecordAuthEvent("login", "failure")
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return handler.respondInternalError(c, "login", err, nil)
	}

	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.respondInternalError(c, "sign token", err, nil)
	}
	handler.loginLimiter.clear(limiterKey)
	handler.metrics.RecordAuthEvent("login", "success")

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
	})
}

// Logout revokes the presented token until its natural expiry.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok || claims == nil || claims.ExpiresAt == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	if err := handler.sessionService.Revoke(c.UserContext(), claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		return handler.respondInternalError(c, "logout", err, nil)
	}
	handler.metrics.RecordAuthEvent("logout", "success")
	return apiMessage(c, "logged out successfully")
}
