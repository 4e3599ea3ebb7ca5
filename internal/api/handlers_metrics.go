package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/services"
)

type metricGoalResponse struct {
	Metric     models.MetricKind `json:"metric"`
	Period     models.Period     `json:"period"`
	Target     float64           `json:"target"`
	Total      float64           `json:"total"`
	Remaining  float64           `json:"remaining"`
	Completed  bool              `json:"completed"`
	Percentage int               `json:"percentage"`
}

// metricLogResponse leaves target, remaining and percentage null when the
// user has no goal for the metric.
type metricLogResponse struct {
	Message    string                `json:"message"`
	Entry      models.MetricLogEntry `json:"entry"`
	Period     models.Period         `json:"period"`
	Total      float64               `json:"total"`
	Target     *float64              `json:"target"`
	Remaining  *float64              `json:"remaining"`
	Completed  bool                  `json:"completed"`
	Percentage *int                  `json:"percentage"`
}

type metricLogsResponse struct {
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
	Logs  []models.MetricLogEntry `json:"logs"`
}

func metricFields(route metricRoute) logrus.Fields {
	return logrus.Fields{"metric": route.Kind}
}

func (handler *Handler) SetMetricGoal(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		fields, err := decodeJSONFields(c)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
		target, message := requiredNumber(fields, route.TargetField())
		if message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}

		handler.ensureDependencies()
		if err := handler.metricService.SetGoal(c.UserContext(), route.Kind, user.ID, target); err != nil {
			return handler.respondInternalError(c, "set metric goal", err, metricFields(route))
		}

		return c.JSON(fiber.Map{
			"message": route.Path + " goal saved successfully",
			"period":  route.Kind.GoalPeriod(),
			"target":  target,
		})
	}
}

func (handler *Handler) GetMetricGoal(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		handler.ensureDependencies()
		status, found, err := handler.metricService.Progress(c.UserContext(), route.Kind, user.ID)
		if err != nil {
			return handler.respondInternalError(c, "get metric goal", err, metricFields(route))
		}
		if !found {
			return apiError(c, fiber.StatusNotFound, "no goal set")
		}

		return c.JSON(metricGoalResponse{
			Metric:     status.Kind,
			Period:     status.Period,
			Target:     status.Target,
			Total:      status.Total,
			Remaining:  status.Progress.Remaining,
			Completed:  status.Progress.Completed,
			Percentage: status.Progress.Percentage,
		})
	}
}

func (handler *Handler) DeleteMetricGoal(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		handler.ensureDependencies()
		if err := handler.metricService.DeleteGoal(c.UserContext(), route.Kind, user.ID); err != nil {
			return handler.respondInternalError(c, "delete metric goal", err, metricFields(route))
		}
		return apiMessage(c, route.Path+" goal deleted successfully")
	}
}

func (handler *Handler) LogMetric(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		fields, err := decodeJSONFields(c)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
		value, message := requiredNumber(fields, route.ValueField)
		if message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}

		handler.ensureDependencies()
		result, err := handler.metricService.Log(c.UserContext(), route.Kind, user.ID, value)
		if err != nil {
			return handler.respondInternalError(c, "log metric", err, metricFields(route))
		}
		handler.metrics.RecordMetricLog(string(route.Kind))

		response := metricLogResponse{
			Message: route.Path + " logged successfully",
			Entry:   result.Entry,
			Period:  result.Period,
			Total:   result.Total,
		}
		if result.Goal != nil && result.Progress != nil {
			target := result.Goal.Target
			remaining := result.Progress.Remaining
			percentage := result.Progress.Percentage
			response.Target = &target
			response.Remaining = &remaining
			response.Completed = result.Progress.Completed
			response.Percentage = &percentage
		}
		return c.Status(fiber.StatusCreated).JSON(response)
	}
}

func (handler *Handler) ListMetricLogs(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		page, message := parsePagination(c)
		if message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}

		handler.ensureDependencies()
		entries, err := handler.metricService.ListLogs(c.UserContext(), route.Kind, user.ID, page.Limit, page.Offset)
		if err != nil {
			return handler.respondInternalError(c, "list metric logs", err, metricFields(route))
		}
		if entries == nil {
			entries = []models.MetricLogEntry{}
		}

		return c.JSON(metricLogsResponse{Page: page.Page, Limit: page.Limit, Logs: entries})
	}
}

// UpdateMetricLog succeeds even when the entry does not exist or belongs to
// another user; nothing is changed in that case.
func (handler *Handler) UpdateMetricLog(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		entryID, ok := parseEntityID(c, "logId")
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid log id")
		}
		fields, err := decodeJSONFields(c)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
		value, message := requiredNumber(fields, route.ValueField)
		if message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}

		handler.ensureDependencies()
		if err := handler.metricService.UpdateLog(c.UserContext(), route.Kind, user.ID, entryID, value); err != nil {
			return handler.respondInternalError(c, "update metric log", err, metricFields(route))
		}
		return apiMessage(c, route.Path+" log updated successfully")
	}
}

func (handler *Handler) DeleteMetricLog(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		entryID, ok := parseEntityID(c, "logId")
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid log id")
		}

		handler.ensureDependencies()
		if err := handler.metricService.DeleteLog(c.UserContext(), route.Kind, user.ID, entryID); err != nil {
			return handler.respondInternalError(c, "delete metric log", err, metricFields(route))
		}
		return apiMessage(c, route.Path+" log deleted successfully")
	}
}

func (handler *Handler) ResetMetricLogs(route metricRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		period, ok := models.ParsePeriod(c.Params("period"))
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid period, allowed: "+joinPeriods(models.AllPeriods()))
		}

		handler.ensureDependencies()
		err := handler.metricService.Reset(c.UserContext(), route.Kind, user.ID, period)
		if errors.Is(err, services.ErrResetPeriodInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid period")
		}
		if err != nil {
			return handler.respondInternalError(c, "reset metric logs", err, metricFields(route))
		}
		return apiMessage(c, string(period)+" "+route.Path+" reset successfully")
	}
}
