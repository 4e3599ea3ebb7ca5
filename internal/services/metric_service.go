package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

var ErrResetPeriodInvalid = errors.New("reset period invalid")

type MetricLogRepository interface {
	Append(ctx context.Context, kind models.MetricKind, userID uint, value float64, day time.Time) (models.MetricLogEntry, error)
	SumByUserDayRange(ctx context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) (float64, error)
	ListPage(ctx context.Context, kind models.MetricKind, userID uint, limit int, offset int) ([]models.MetricLogEntry, error)
	UpdateByID(ctx context.Context, kind models.MetricKind, userID uint, entryID uint, value float64) error
	DeleteByID(ctx context.Context, kind models.MetricKind, userID uint, entryID uint) error
	DeleteByUserDayRange(ctx context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) error
}

type MetricGoalRepository interface {
	SetTarget(ctx context.Context, kind models.MetricKind, userID uint, target float64) error
	Get(ctx context.Context, kind models.MetricKind, userID uint) (models.MetricGoal, bool, error)
	Remove(ctx context.Context, kind models.MetricKind, userID uint) error
}

// GoalStatus is a per-metric goal together with the total of its current period.
type GoalStatus struct {
	Kind     models.MetricKind
	Period   models.Period
	Target   float64
	Total    float64
	Progress Progress
}

// LogResult describes the state right after a value was logged. Goal and
// Progress are nil when the user has no goal for the metric.
type LogResult struct {
	Entry    models.MetricLogEntry
	Period   models.Period
	Total    float64
	Goal     *models.MetricGoal
	Progress *Progress
}

type MetricService struct {
	logs  MetricLogRepository
	goals MetricGoalRepository
	clock Clock
}

func NewMetricService(logs MetricLogRepository, goals MetricGoalRepository, clock Clock) *MetricService {
	return &MetricService{
		logs:  logs,
		goals: goals,
		clock: clock,
	}
}

func (service *MetricService) Log(ctx context.Context, kind models.MetricKind, userID uint, value float64) (LogResult, error) {
	entry, err := service.logs.Append(ctx, kind, userID, value, service.clock.Today())
	if err != nil {
		return LogResult{}, storageError("append metric log", err)
	}

	period := kind.GoalPeriod()
	total, err := service.SumForPeriod(ctx, kind, userID, period)
	if err != nil {
		return LogResult{}, err
	}

	result := LogResult{Entry: entry, Period: period, Total: total}
	goal, found, err := service.goals.Get(ctx, kind, userID)
	if err != nil {
		return LogResult{}, storageError("load metric goal", err)
	}
	if found {
		progress := ComputeProgress(goal.Target, total)
		result.Goal = &goal
		result.Progress = &progress
	}
	return result, nil
}

// Progress reports found=false when the user has not set a goal for kind.
func (service *MetricService) Progress(ctx context.Context, kind models.MetricKind, userID uint) (GoalStatus, bool, error) {
	goal, found, err := service.goals.Get(ctx, kind, userID)
	if err != nil {
		return GoalStatus{}, false, storageError("load metric goal", err)
	}
	if !found {
		return GoalStatus{}, false, nil
	}

	period := kind.GoalPeriod()
	total, err := service.SumForPeriod(ctx, kind, userID, period)
	if err != nil {
		return GoalStatus{}, false, err
	}

	return GoalStatus{
		Kind:     kind,
		Period:   period,
		Target:   goal.Target,
		Total:    total,
		Progress: ComputeProgress(goal.Target, total),
	}, true, nil
}

func (service *MetricService) SetGoal(ctx context.Context, kind models.MetricKind, userID uint, target float64) error {
	return storageError("set metric goal", service.goals.SetTarget(ctx, kind, userID, target))
}

func (service *MetricService) DeleteGoal(ctx context.Context, kind models.MetricKind, userID uint) error {
	return storageError("remove metric goal", service.goals.Remove(ctx, kind, userID))
}

func (service *MetricService) ListLogs(ctx context.Context, kind models.MetricKind, userID uint, limit int, offset int) ([]models.MetricLogEntry, error) {
	entries, err := service.logs.ListPage(ctx, kind, userID, limit, offset)
	if err != nil {
		return nil, storageError("list metric logs", err)
	}
	return entries, nil
}

func (service *MetricService) UpdateLog(ctx context.Context, kind models.MetricKind, userID uint, entryID uint, value float64) error {
	return storageError("update metric log", service.logs.UpdateByID(ctx, kind, userID, entryID, value))
}

func (service *MetricService) DeleteLog(ctx context.Context, kind models.MetricKind, userID uint, entryID uint) error {
	return storageError("delete metric log", service.logs.DeleteByID(ctx, kind, userID, entryID))
}

// Reset deletes every entry of kind logged inside the current period window.
func (service *MetricService) Reset(ctx context.Context, kind models.MetricKind, userID uint, period models.Period) error {
	window, ok := WindowForPeriod(period, service.clock.Today())
	if !ok {
		return ErrResetPeriodInvalid
	}
	return storageError("reset metric logs", service.logs.DeleteByUserDayRange(ctx, kind, userID, window.Start, window.End))
}

// SumForPeriod totals kind over the window of period that contains today.
// An unknown period sums to zero.
func (service *MetricService) SumForPeriod(ctx context.Context, kind models.MetricKind, userID uint, period models.Period) (float64, error) {
	window, ok := WindowForPeriod(period, service.clock.Today())
	if !ok {
		return 0, nil
	}
	total, err := service.logs.SumByUserDayRange(ctx, kind, userID, window.Start, window.End)
	if err != nil {
		return 0, storageError("sum metric logs", err)
	}
	return total, nil
}
