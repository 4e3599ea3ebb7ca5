package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/services"
)

func (handler *Handler) SaveHealthProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input healthProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	profile, err := handler.healthService.Save(c.UserContext(), user.ID, services.HealthProfileInput{
		Age:               input.Age,
		Gender:            input.Gender,
		Height:            input.Height,
		Weight:            input.Weight,
		BloodType:         input.BloodType,
		ActivityLevel:     input.ActivityLevel,
		HealthGoal:        input.HealthGoal,
		ActivityTypes:     input.ActivityTypes,
		BloodPressure:     input.BloodPressure,
		Glucose:           input.Glucose,
		Cholesterol:       input.Cholesterol,
		HasDiabetes:       input.HasDiabetes,
		HasHypertension:   input.HasHypertension,
		HasHeartCondition: input.HasHeartCondition,
		Smoker:            input.Smoker,
		AlcoholConsumer:   input.AlcoholConsumer,
		Medications:       input.Medications,
		Allergies:         input.Allergies,
		MedicalConditions: input.MedicalConditions,
	})
	if errors.Is(err, services.ErrHealthProfileInvalid) {
		return apiError(c, fiber.StatusBadRequest, "health profile values out of range")
	}
	if err != nil {
		return handler.respondInternalError(c, "save health profile", err, nil)
	}

	return c.JSON(fiber.Map{
		"message": "health profile saved successfully",
		"profile": profile,
	})
}

// GetHealthProfile answers null when the user never saved a profile.
func (handler *Handler) GetHealthProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	profile, found, err := handler.healthService.Get(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondInternalError(c, "get health profile", err, nil)
	}
	if !found {
		return c.JSON(nil)
	}
	return c.JSON(profile)
}
