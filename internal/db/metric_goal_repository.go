package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
)

type MetricGoalRepository struct {
	database *gorm.DB
}

func NewMetricGoalRepository(database *gorm.DB) *MetricGoalRepository {
	return &MetricGoalRepository{database: database}
}

// SetTarget creates or replaces the user's goal for kind in one statement, so
// concurrent calls never leave two rows behind.
func (repo *MetricGoalRepository) SetTarget(ctx context.Context, kind models.MetricKind, userID uint, target float64) error {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	statement := fmt.Sprintf(
		`INSERT INTO %[1]s (user_id, %[2]s, created_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET %[2]s = excluded.%[2]s, updated_at = excluded.updated_at`,
		table.goalTable,
		table.targetColumn,
	)
	return repo.database.WithContext(ctx).Exec(statement, userID, target, now, now).Error
}

func (repo *MetricGoalRepository) Get(ctx context.Context, kind models.MetricKind, userID uint) (models.MetricGoal, bool, error) {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return models.MetricGoal{}, false, err
	}

	query := fmt.Sprintf(
		`SELECT %s, created_at, updated_at FROM %s WHERE user_id = ? LIMIT 1`,
		table.targetColumn,
		table.goalTable,
	)
	goal := models.MetricGoal{UserID: userID}
	row := repo.database.WithContext(ctx).Raw(query, userID).Row()
	if err := row.Scan(&goal.Target, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MetricGoal{}, false, nil
		}
		return models.MetricGoal{}, false, err
	}
	return goal, true, nil
}

func (repo *MetricGoalRepository) Remove(ctx context.Context, kind models.MetricKind, userID uint) error {
	table, err := lookupMetricTable(kind)
	if err != nil {
		return err
	}

	statement := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ?`, table.goalTable)
	return repo.database.WithContext(ctx).Exec(statement, userID).Error
}
