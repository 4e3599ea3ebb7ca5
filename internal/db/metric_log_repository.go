package db

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
)

type MetricLogRepository struct {
	database *gorm.DB
}

func NewMetricLogRepository(database *gorm.DB) *MetricLogRepository {
	return &MetricLogRepository{database: database}
}

func (repo *MetricLogRepository) Append(ctx context.Context, kind models.MetricKind, userID uint, value float64, day time.Time) (models.MetricLogEntry, error) {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return models.MetricLogEntry{}, err
	}

	entry := models.MetricLogEntry{
		UserID:    userID,
		Value:     value,
		LogDate:   logDateKey(day),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, %s, log_date, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		table.logTable,
		table.valueColumn,
	)
	row := repo.database.WithContext(ctx).Raw(query, entry.UserID, entry.Value, entry.LogDate, entry.CreatedAt).Row()
	if err := row.Scan(&entry.ID); err != nil {
		return models.MetricLogEntry{}, err
	}
	return entry, nil
}

// SumByUserDayRange totals the entries whose log_date lies in [dayStart, dayEnd).
func (repo *MetricLogRepository) SumByUserDayRange(ctx context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) (float64, error) {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		`SELECT COALESCE(SUM(%s), 0) FROM %s WHERE user_id = ? AND log_date >= ? AND log_date < ?`,
		table.valueColumn,
		table.logTable,
	)
	var total float64
	row := repo.database.WithContext(ctx).Raw(query, userID, logDateKey(dayStart), logDateKey(dayEnd)).Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListPage returns up to limit entries newest first. A non-positive limit
// yields an empty page and a negative offset counts from the start.
func (repo *MetricLogRepository) ListPage(ctx context.Context, kind models.MetricKind, userID uint, limit int, offset int) ([]models.MetricLogEntry, error) {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return nil, err
	}
	entries := []models.MetricLogEntry{}
	if limit <= 0 {
		return entries, nil
	}
	offset = max(offset, 0)

	query := fmt.Sprintf(
		`SELECT id, user_id, %s AS value, log_date, created_at FROM %s
WHERE user_id = ?
ORDER BY log_date DESC, created_at DESC, id DESC
LIMIT ? OFFSET ?`,
		table.valueColumn,
		table.logTable,
	)
	if err := repo.database.WithContext(ctx).Raw(query, userID, limit, offset).Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateByID changes the value of one of the user's own entries. An id that
// does not exist or belongs to someone else is left alone without error.
func (repo *MetricLogRepository) UpdateByID(ctx context.Context, kind models.MetricKind, userID uint, entryID uint, value float64) error {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return err
	}

	statement := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ? AND user_id = ?`, table.logTable, table.valueColumn)
	return repo.database.WithContext(ctx).Exec(statement, value, entryID, userID).Error
}

func (repo *MetricLogRepository) DeleteByID(ctx context.Context, kind models.MetricKind, userID uint, entryID uint) error {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return err
	}

	statement := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table.logTable)
	return repo.database.WithContext(ctx).Exec(statement, entryID, userID).Error
}

func (repo *MetricLogRepository) DeleteByUserDayRange(ctx context.Context, kind models.MetricKind, userID uint, dayStart time.Time, dayEnd time.Time) error {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return err
	}

	statement := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND log_date >= ? AND log_date < ?`, table.logTable)
	return repo.database.WithContext(ctx).Exec(statement, userID, logDateKey(dayStart), logDateKey(dayEnd)).Error
}
