package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/vitalog/internal/models"
)

func newMetricServiceForTest(t *testing.T, today string) (*MetricService, *metricLogRepositoryStub, *metricGoalRepositoryStub) {
	t.Helper()

	logs := newMetricLogRepositoryStub()
	goals := newMetricGoalRepositoryStub()
	service := NewMetricService(logs, goals, FixedClock{Day: mustParseDay(t, today)})
	return service, logs, goals
}

func TestMetricServiceStepsScenarioCompletesGoal(t *testing.T) {
	service, _, _ := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	require.NoError(t, service.SetGoal(ctx, models.MetricSteps, 1, 10000))

	var result LogResult
	for _, steps := range []float64{3000, 4000, 3500} {
		var err error
		result, err = service.Log(ctx, models.MetricSteps, 1, steps)
		require.NoError(t, err)
	}

	assert.Equal(t, "2025-03-12", result.Entry.LogDate)
	assert.Equal(t, models.PeriodDaily, result.Period)
	assert.Equal(t, 10500.0, result.Total)
	require.NotNil(t, result.Progress)
	assert.Equal(t, Progress{Remaining: 0, Completed: true, Percentage: 100}, *result.Progress)

	status, found, err := service.Progress(ctx, models.MetricSteps, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 10000.0, status.Target)
	assert.Equal(t, 10500.0, status.Total)
	assert.True(t, status.Progress.Completed)
}

func TestMetricServiceLogWithoutGoalReportsNoProgress(t *testing.T) {
	service, _, _ := newMetricServiceForTest(t, "2025-03-12")

	result, err := service.Log(context.Background(), models.MetricWater, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 2.0, result.Total)
	assert.Nil(t, result.Goal)
	assert.Nil(t, result.Progress)
}

func TestMetricServiceProgressForFreshUserIsAbsent(t *testing.T) {
	service, _, _ := newMetricServiceForTest(t, "2025-03-12")

	_, found, err := service.Progress(context.Background(), models.MetricSleep, 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMetricServiceWorkoutGoalUsesISOWeek(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	logs.seed(models.MetricWorkout, 1, 2, "2025-03-07")
	logs.seed(models.MetricWorkout, 1, 1, "2025-03-10")
	require.NoError(t, service.SetGoal(ctx, models.MetricWorkout, 1, 4))

	status, found, err := service.Progress(ctx, models.MetricWorkout, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.PeriodWeekly, status.Period)
	assert.Equal(t, 1.0, status.Total)
	assert.Equal(t, 25, status.Progress.Percentage)
}

func TestMetricServiceCaloriesGoalUsesCalendarMonth(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	logs.seed(models.MetricCalories, 1, 900, "2025-02-28")
	logs.seed(models.MetricCalories, 1, 1500, "2025-03-01")
	logs.seed(models.MetricCalories, 1, 500, "2025-03-07")
	require.NoError(t, service.SetGoal(ctx, models.MetricCalories, 1, 60000))

	status, found, err := service.Progress(ctx, models.MetricCalories, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.PeriodMonthly, status.Period)
	assert.Equal(t, 2000.0, status.Total)
	assert.Equal(t, 3, status.Progress.Percentage)
}

func TestMetricServiceSetGoalTwiceKeepsLatestTarget(t *testing.T) {
	service, _, goals := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	require.NoError(t, service.SetGoal(ctx, models.MetricSleep, 1, 8))
	require.NoError(t, service.SetGoal(ctx, models.MetricSleep, 1, 5))

	assert.Len(t, goals.goals, 1)
	status, found, err := service.Progress(ctx, models.MetricSleep, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5.0, status.Target)
}

func TestMetricServiceDeleteLogIsIdempotentAndOwnerScoped(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	result, err := service.Log(ctx, models.MetricMeditation, 1, 15)
	require.NoError(t, err)

	require.NoError(t, service.DeleteLog(ctx, models.MetricMeditation, 2, result.Entry.ID))
	assert.Len(t, logs.entries[models.MetricMeditation], 1)

	require.NoError(t, service.DeleteLog(ctx, models.MetricMeditation, 1, result.Entry.ID))
	require.NoError(t, service.DeleteLog(ctx, models.MetricMeditation, 1, result.Entry.ID))
	assert.Empty(t, logs.entries[models.MetricMeditation])
}

func TestMetricServiceResetDeletesOnlyCurrentWindow(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	ctx := context.Background()

	logs.seed(models.MetricSteps, 1, 100, "2025-03-09")
	logs.seed(models.MetricSteps, 1, 200, "2025-03-11")
	logs.seed(models.MetricSteps, 1, 300, "2025-03-12")

	require.NoError(t, service.Reset(ctx, models.MetricSteps, 1, models.PeriodDaily))
	total, err := service.SumForPeriod(ctx, models.MetricSteps, 1, models.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, 300.0, total)

	require.NoError(t, service.Reset(ctx, models.MetricSteps, 1, models.PeriodWeekly))
	total, err = service.SumForPeriod(ctx, models.MetricSteps, 1, models.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)

	assert.ErrorIs(t, service.Reset(ctx, models.MetricSteps, 1, models.Period("hourly")), ErrResetPeriodInvalid)
}

func TestMetricServiceWrapsRepositoryFailuresAsStorageErrors(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	driverErr := errors.New("disk I/O error")
	logs.err = driverErr

	_, err := service.Log(context.Background(), models.MetricSteps, 1, 10)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "append metric log", storageErr.Op)
	assert.ErrorIs(t, err, driverErr)
}

func TestMetricServiceListLogsPaginates(t *testing.T) {
	service, logs, _ := newMetricServiceForTest(t, "2025-03-12")
	for _, day := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		logs.seed(models.MetricWater, 1, 1, day)
	}

	page, err := service.ListLogs(context.Background(), models.MetricWater, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2025-03-03", page[0].LogDate)

	page, err = service.ListLogs(context.Background(), models.MetricWater, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "2025-03-01", page[0].LogDate)
}
