package services

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

type metricLogRepositoryStub struct {
	entries map[models.MetricKind][]models.MetricLogEntry
	nextID  uint
	err     error
}

func newMetricLogRepositoryStub() *metricLogRepositoryStub {
	return &metricLogRepositoryStub{
		entries: make(map[models.MetricKind][]models.MetricLogEntry),
		nextID:  1,
	}
}

func (stub *metricLogRepositoryStub) seed(kind models.MetricKind, userID uint, value float64, day string) {
	stub.entries[kind] = append(stub.entries[kind], models.MetricLogEntry{
		ID:      stub.nextID,
		UserID:  userID,
		Value:   value,
		LogDate: day,
	})
	stub.nextID++
}

func (stub *metricLogRepositoryStub) Append(_ context.Context, kind models.MetricKind, userID uint, value float64, day time.Time) (models.MetricLogEntry, error) {
	if stub.err != nil {
		return models.MetricLogEntry{}, stub.err
	}
	stub.seed(kind, userID, value, day.Format("2006-01-02"))
	entries := stub.entries[kind]
	return entries[len(entries)-1], nil
}

func (stub *metricLogRepositoryStub) SumByUserDayRange(_ context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) (float64, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	from := dayStart.Format("2006-01-02")
	to := dayEnd.Format("2006-01-02")
	total := 0.0
	for _, entry := range stub.entries[kind] {
		if entry.UserID == userID && entry.LogDate >= from && entry.LogDate < to {
			total += entry.Value
		}
	}
	return total, nil
}

func (stub *metricLogRepositoryStub) ListPage(_ context.Context, kind models.MetricKind, userID uint, limit int, offset int) ([]models.MetricLogEntry, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	owned := make([]models.MetricLogEntry, 0)
	for _, entry := range stub.entries[kind] {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].LogDate == owned[j].LogDate {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].LogDate > owned[j].LogDate
	})
	if offset >= len(owned) {
		return []models.MetricLogEntry{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (stub *metricLogRepositoryStub) UpdateByID(_ context.Context, kind models.MetricKind, userID uint, entryID uint, value float64) error {
	if stub.err != nil {
		return stub.err
	}
	for index, entry := range stub.entries[kind] {
		if entry.ID == entryID && entry.UserID == userID {
			stub.entries[kind][index].Value = value
		}
	}
	return nil
}

func (stub *metricLogRepositoryStub) DeleteByID(_ context.Context, kind models.MetricKind, userID uint, entryID uint) error {
	if stub.err != nil {
		return stub.err
	}
	stub.deleteWhere(kind, func(entry models.MetricLogEntry) bool {
		return entry.ID == entryID && entry.UserID == userID
	})
	return nil
}

func (stub *metricLogRepositoryStub) DeleteByUserDayRange(_ context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) error {
	if stub.err != nil {
		return stub.err
	}
	from := dayStart.Format("2006-01-02")
	to := dayEnd.Format("2006-01-02")
	stub.deleteWhere(kind, func(entry models.MetricLogEntry) bool {
		return entry.UserID == userID && entry.LogDate >= from && entry.LogDate < to
	})
	return nil
}

func (stub *metricLogRepositoryStub) deleteWhere(kind models.MetricKind, match func(models.MetricLogEntry) bool) {
	kept := make([]models.MetricLogEntry, 0, len(stub.entries[kind]))
	for _, entry := range stub.entries[kind] {
		if !match(entry) {
			kept = append(kept, entry)
		}
	}
	stub.entries[kind] = kept
}

type metricGoalKey struct {
	kind   models.MetricKind
	userID uint
}

type metricGoalRepositoryStub struct {
	goals map[metricGoalKey]models.MetricGoal
	err   error
}

func newMetricGoalRepositoryStub() *metricGoalRepositoryStub {
	return &metricGoalRepositoryStub{goals: make(map[metricGoalKey]models.MetricGoal)}
}

func (stub *metricGoalRepositoryStub) SetTarget(_ context.Context, kind models.MetricKind, userID uint, target float64) error {
	if stub.err != nil {
		return stub.err
	}
	stub.goals[metricGoalKey{kind: kind, userID: userID}] = models.MetricGoal{UserID: userID, Target: target}
	return nil
}

func (stub *metricGoalRepositoryStub) Get(_ context.Context, kind models.MetricKind, userID uint) (models.MetricGoal, bool, error) {
	if stub.err != nil {
		return models.MetricGoal{}, false, stub.err
	}
	goal, ok := stub.goals[metricGoalKey{kind: kind, userID: userID}]
	return goal, ok, nil
}

func (stub *metricGoalRepositoryStub) Remove(_ context.Context, kind models.MetricKind, userID uint) error {
	if stub.err != nil {
		return stub.err
	}
	delete(stub.goals, metricGoalKey{kind: kind, userID: userID})
	return nil
}
