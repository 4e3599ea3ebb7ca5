package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/models"
)

const (
	maxNumericValue  = 1000000
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var errInvalidJSONBody = errors.New("invalid json body")

// decodeJSONFields keeps each top-level field raw so that numeric checks can
// tell a missing field from a string or a null.
func decodeJSONFields(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errInvalidJSONBody
	}
	return fields, nil
}

// requiredNumber returns the value of field or a client-facing message
// explaining why it was rejected.
func requiredNumber(fields map[string]json.RawMessage, field string) (float64, string) {
	raw, ok := fields[field]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return 0, field + " is required"
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, field + " must be a valid number"
	}
	if value <= 0 {
		return 0, field + " must be greater than 0"
	}
	if value > maxNumericValue {
		return 0, field + " exceeds maximum allowed value"
	}
	return value, ""
}

func requiredString(fields map[string]json.RawMessage, field string) (string, bool) {
	raw, ok := fields[field]
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

type pagination struct {
	Page   int
	Limit  int
	Offset int
}

func parsePagination(c *fiber.Ctx) (pagination, string) {
	page := 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return pagination{}, "page must be a positive integer"
		}
		page = parsed
	}

	limit := defaultPageLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageLimit {
			return pagination{}, "limit must be between 1 and 100"
		}
		limit = parsed
	}

	return pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}, ""
}

func parseEntityID(c *fiber.Ctx, param string) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Params(param)), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func parseGoalInput(fields map[string]json.RawMessage) (goalInput, string) {
	goalType, ok := requiredString(fields, "type")
	if !ok {
		return goalInput{}, "valid type required"
	}
	kind, ok := models.ParseMetricKind(goalType)
	if !ok {
		return goalInput{}, fmt.Sprintf("invalid goal type, allowed: %s", joinMetricKinds(models.AllMetricKinds()))
	}

	target, message := requiredNumber(fields, "targetValue")
	if message != "" {
		return goalInput{}, message
	}

	rawPeriod, _ := requiredString(fields, "period")
	period, ok := models.ParsePeriod(rawPeriod)
	if !ok {
		return goalInput{}, fmt.Sprintf("invalid period, allowed: %s", joinPeriods(models.AllPeriods()))
	}

	return goalInput{Type: string(kind), TargetValue: target, Period: string(period)}, ""
}

func joinMetricKinds(kinds []models.MetricKind) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return strings.Join(names, ", ")
}

func joinPeriods(periods []models.Period) string {
	names := make([]string, 0, len(periods))
	for _, period := range periods {
		names = append(names, string(period))
	}
	return strings.Join(names, ", ")
}
