package api

import "github.com/terraincognita07/vitalog/internal/models"

// metricRoute binds a metric kind to its URL segment and to the JSON field
// that carries a logged value.
type metricRoute struct {
	Path       string
	Kind       models.MetricKind
	ValueField string
}

var metricRoutes = []metricRoute{
	{Path: "steps", Kind: models.MetricSteps, ValueField: "steps"},
	{Path: "water", Kind: models.MetricWater, ValueField: "glasses"},
	{Path: "sleep", Kind: models.MetricSleep, ValueField: "hours"},
	{Path: "meditation", Kind: models.MetricMeditation, ValueField: "minutes"},
	{Path: "workouts", Kind: models.MetricWorkout, ValueField: "workouts"},
	{Path: "calories", Kind: models.MetricCalories, ValueField: "calories"},
}

// TargetField is daily_target, weekly_target or monthly_target depending on
// the goal period of the metric.
func (route metricRoute) TargetField() string {
	return string(route.Kind.GoalPeriod()) + "_target"
}
