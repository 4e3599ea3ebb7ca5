package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/services"
)

type goalView struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	TargetValue float64   `json:"targetValue"`
	Period      string    `json:"period"`
	CreatedAt   time.Time `json:"created_at"`
}

type goalProgressView struct {
	ID         uint    `json:"id"`
	Type       string  `json:"type"`
	Target     float64 `json:"target"`
	Period     string  `json:"period"`
	Current    float64 `json:"current"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
	Completed  bool    `json:"completed"`
}

func newGoalView(goal models.Goal) goalView {
	return goalView{
		ID:          goal.ID,
		Type:        goal.Type,
		TargetValue: goal.TargetValue,
		Period:      goal.Period,
		CreatedAt:   goal.CreatedAt,
	}
}

func newGoalProgressView(progress services.GoalProgress) goalProgressView {
	return goalProgressView{
		ID:         progress.Goal.ID,
		Type:       progress.Goal.Type,
		Target:     progress.Goal.TargetValue,
		Period:     progress.Goal.Period,
		Current:    progress.Current,
		Remaining:  progress.Remaining,
		Percentage: progress.Percentage,
		Completed:  progress.Completed,
	}
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fields, err := decodeJSONFields(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	input, message := parseGoalInput(fields)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	handler.ensureDependencies()
	goal, err := handler.goalEngine.Create(c.UserContext(), user.ID, input.Type, input.TargetValue, input.Period)
	switch {
	case errors.Is(err, services.ErrGoalTypeInvalid),
		errors.Is(err, services.ErrGoalPeriodInvalid),
		errors.Is(err, services.ErrGoalTargetInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return handler.respondInternalError(c, "create goal", err, nil)
	}
	handler.metrics.RecordGoalCreated(goal.Type, goal.Period)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "goal created successfully",
		"goal":    newGoalView(goal),
	})
}

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	goals, err := handler.goalEngine.ListWithProgress(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondInternalError(c, "list goals", err, nil)
	}

	views := make([]goalProgressView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, newGoalProgressView(goal))
	}
	return c.JSON(views)
}

func (handler *Handler) GetGoalProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goalID, ok := parseEntityID(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	handler.ensureDependencies()
	progress, found, err := handler.goalEngine.GetByID(c.UserContext(), user.ID, goalID)
	if err != nil {
		return handler.respondInternalError(c, "get goal progress", err, nil)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "goal not found")
	}
	return c.JSON(newGoalProgressView(progress))
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goalID, ok := parseEntityID(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	handler.ensureDependencies()
	if err := handler.goalEngine.Delete(c.UserContext(), user.ID, goalID); err != nil {
		return handler.respondInternalError(c, "delete goal", err, nil)
	}
	return apiMessage(c, "goal deleted successfully")
}
