package models

import (
	"strings"
	"time"
)

// MetricKind names one tracked health metric. Each kind has its own log table
// and its own single-row-per-user goal table.
type MetricKind string

const (
	MetricSteps      MetricKind = "steps"
	MetricWater      MetricKind = "water"
	MetricSleep      MetricKind = "sleep"
	MetricMeditation MetricKind = "meditation"
	MetricWorkout    MetricKind = "workout"
	MetricCalories   MetricKind = "calories"
)

// Period is the rollup window a goal is measured against.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func AllMetricKinds() []MetricKind {
	return []MetricKind{
		MetricSteps,
		MetricWater,
		MetricSleep,
		MetricMeditation,
		MetricWorkout,
		MetricCalories,
	}
}

func AllPeriods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

func ParseMetricKind(raw string) (MetricKind, bool) {
	candidate := MetricKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, kind := range AllMetricKinds() {
		if kind == candidate {
			return kind, true
		}
	}
	return "", false
}

func ParsePeriod(raw string) (Period, bool) {
	candidate := Period(strings.ToLower(strings.TrimSpace(raw)))
	for _, period := range AllPeriods() {
		if period == candidate {
			return period, true
		}
	}
	return "", false
}

// GoalPeriod is the window the per-metric goal of a kind is measured against.
func (kind MetricKind) GoalPeriod() Period {
	switch kind {
	case MetricWorkout:
		return PeriodWeekly
	case MetricCalories:
		return PeriodMonthly
	default:
		return PeriodDaily
	}
}

// MetricLogEntry is one logged value. LogDate is a calendar day in
// YYYY-MM-DD form, never a timestamp.
type MetricLogEntry struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"-"`
	Value     float64   `json:"value"`
	LogDate   string    `json:"log_date"`
	CreatedAt time.Time `json:"created_at"`
}

// MetricGoal is the per-metric target. There is at most one per user and kind.
type MetricGoal struct {
	UserID    uint      `json:"-"`
	Target    float64   `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
