package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/vitalog/internal/models"
)

var (
	ErrGoalTypeInvalid   = errors.New("goal type invalid")
	ErrGoalPeriodInvalid = errors.New("goal period invalid")
	ErrGoalTargetInvalid = errors.New("goal target invalid")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	ListByUser(ctx context.Context, userID uint) ([]models.Goal, error)
	FindByIDForUser(ctx context.Context, userID uint, goalID uint) (models.Goal, bool, error)
	DeleteForUser(ctx context.Context, userID uint, goalID uint) error
}

// PeriodTotals is the slice of the metric service the goal engine needs.
type PeriodTotals interface {
	SumForPeriod(ctx context.Context, kind models.MetricKind, userID uint, period models.Period) (float64, error)
}

// GoalProgress is a unified goal with progress computed at read time.
type GoalProgress struct {
	Goal       models.Goal
	Current    float64
	Remaining  float64
	Percentage int
	Completed  bool
}

type GoalEngine struct {
	goals  GoalRepository
	totals PeriodTotals
}

func NewGoalEngine(goals GoalRepository, totals PeriodTotals) *GoalEngine {
	return &GoalEngine{goals: goals, totals: totals}
}

// Create always inserts; a user may hold several goals with the same type and period.
func (engine *GoalEngine) Create(ctx context.Context, userID uint, goalType string, target float64, period string) (models.Goal, error) {
	kind, ok := models.ParseMetricKind(goalType)
	if !ok {
		return models.Goal{}, ErrGoalTypeInvalid
	}
	normalizedPeriod, ok := models.ParsePeriod(period)
	if !ok {
		return models.Goal{}, ErrGoalPeriodInvalid
	}
	if target <= 0 {
		return models.Goal{}, ErrGoalTargetInvalid
	}

	goal := models.Goal{
		UserID:      userID,
		Type:        string(kind),
		TargetValue: target,
		Period:      string(normalizedPeriod),
	}
	if err := engine.goals.Create(ctx, &goal); err != nil {
		return models.Goal{}, storageError("create goal", err)
	}
	return goal, nil
}

func (engine *GoalEngine) ListWithProgress(ctx context.Context, userID uint) ([]GoalProgress, error) {
	goals, err := engine.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageError("list goals", err)
	}

	result := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		progress, err := engine.progressFor(ctx, goal)
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, nil
}

func (engine *GoalEngine) GetByID(ctx context.Context, userID uint, goalID uint) (GoalProgress, bool, error) {
	goal, found, err := engine.goals.FindByIDForUser(ctx, userID, goalID)
	if err != nil {
		return GoalProgress{}, false, storageError("load goal", err)
	}
	if !found {
		return GoalProgress{}, false, nil
	}

	progress, err := engine.progressFor(ctx, goal)
	if err != nil {
		return GoalProgress{}, false, err
	}
	return progress, true, nil
}

func (engine *GoalEngine) Delete(ctx context.Context, userID uint, goalID uint) error {
	return storageError("delete goal", engine.goals.DeleteForUser(ctx, userID, goalID))
}

// progressFor treats a stored type or period it does not recognise as having
// no logged activity rather than failing the whole read.
func (engine *GoalEngine) progressFor(ctx context.Context, goal models.Goal) (GoalProgress, error) {
	current := 0.0
	kind, kindOK := models.ParseMetricKind(goal.Type)
	period, periodOK := models.ParsePeriod(goal.Period)
	if kindOK && periodOK {
		total, err := engine.totals.SumForPeriod(ctx, kind, goal.UserID, period)
		if err != nil {
			return GoalProgress{}, err
		}
		current = total
	}

	progress := ComputeProgress(goal.TargetValue, current)
	return GoalProgress{
		Goal:       goal,
		Current:    current,
		Remaining:  progress.Remaining,
		Percentage: progress.Percentage,
		Completed:  progress.Completed,
	}, nil
}
