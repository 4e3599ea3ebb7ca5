package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HealthProfileRepository struct {
	database *gorm.DB
}

func NewHealthProfileRepository(database *gorm.DB) *HealthProfileRepository {
	return &HealthProfileRepository{database: database}
}

// Upsert writes the whole profile, replacing any previous one for the user.
func (repo *HealthProfileRepository) Upsert(ctx context.Context, profile *models.HealthProfile) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(healthProfileMutableColumns),
	}).Create(profile).Error
}

func (repo *HealthProfileRepository) FindByUser(ctx context.Context, userID uint) (models.HealthProfile, bool, error) {
	var profile models.HealthProfile
	err := repo.database.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HealthProfile{}, false, nil
	}
	if err != nil {
		return models.HealthProfile{}, false, err
	}
	return profile, true, nil
}

var healthProfileMutableColumns = []string{
	"age",
	"gender",
	"height",
	"weight",
	"blood_type",
	"activity_level",
	"health_goal",
	"activity_types",
	"blood_pressure",
	"glucose",
	"cholesterol",
	"has_diabetes",
	"has_hypertension",
	"has_heart_condition",
	"smoker",
	"alcohol_consumer",
	"medications",
	"allergies",
	"medical_conditions",
	"updated_at",
}
