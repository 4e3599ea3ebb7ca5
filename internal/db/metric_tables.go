package db

import (
	"fmt"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

// logDateLayout is how calendar days are stored in every *_logs.log_date
// column. Lexical order on this layout matches chronological order.
const logDateLayout = "2006-01-02"

type metricTable struct {
	logTable     string
	valueColumn  string
	goalTable    string
	targetColumn string
}

// metricTables is the only source of identifiers interpolated into metric SQL.
var metricTables = map[models.MetricKind]metricTable{
	models.MetricSteps:      {logTable: "step_logs", valueColumn: "steps", goalTable: "step_goals", targetColumn: "daily_target"},
	models.MetricWater:      {logTable: "water_logs", valueColumn: "glasses", goalTable: "water_goals", targetColumn: "daily_target"},
	models.MetricSleep:      {logTable: "sleep_logs", valueColumn: "hours", goalTable: "sleep_goals", targetColumn: "daily_target"},
	models.MetricMeditation: {logTable: "meditation_logs", valueColumn: "minutes", goalTable: "meditation_goals", targetColumn: "daily_target"},
	models.MetricWorkout:    {logTable: "workout_logs", valueColumn: "workouts", goalTable: "workout_goals", targetColumn: "weekly_target"},
	models.MetricCalories:   {logTable: "calorie_logs", valueColumn: "calories", goalTable: "calorie_goals", targetColumn: "monthly_target"},
}

func lookupMetricTable(kind models.MetricKind) (metricTable, error) {
	table, ok := metricTables[kind]
	if !ok {
		return metricTable{}, fmt.Errorf("unknown metric kind %q", kind)
	}
	return table, nil
}

func logDateKey(day time.Time) string {
	return day.Format(logDateLayout)
}
