package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return repo.database.WithContext(ctx).Create(goal).Error
}

func (repo *GoalRepository) ListByUser(ctx context.Context, userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByIDForUser(ctx context.Context, userID uint, goalID uint) (models.Goal, bool, error) {
	var goal models.Goal
	err := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Goal{}, false, nil
	}
	if err != nil {
		return models.Goal{}, false, err
	}
	return goal, true, nil
}

func (repo *GoalRepository) DeleteForUser(ctx context.Context, userID uint, goalID uint) error {
	return repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{}).Error
}
