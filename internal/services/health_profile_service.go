package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

var ErrHealthProfileInvalid = errors.New("health profile invalid")

const maxHealthTextLength = 1000

type HealthProfileRepository interface {
	Upsert(ctx context.Context, profile *models.HealthProfile) error
	FindByUser(ctx context.Context, userID uint) (models.HealthProfile, bool, error)
}

type HealthProfileInput struct {
	Age               *int
	Gender            string
	Height            *float64
	Weight            *float64
	BloodType         string
	ActivityLevel     string
	HealthGoal        string
	ActivityTypes     []string
	BloodPressure     string
	Glucose           *float64
	Cholesterol       *float64
	HasDiabetes       bool
	HasHypertension   bool
	HasHeartCondition bool
	Smoker            bool
	AlcoholConsumer   bool
	Medications       string
	Allergies         string
	MedicalConditions string
}

type HealthProfileService struct {
	profiles HealthProfileRepository
}

func NewHealthProfileService(profiles HealthProfileRepository) *HealthProfileService {
	return &HealthProfileService{profiles: profiles}
}

func (service *HealthProfileService) Save(ctx context.Context, userID uint, input HealthProfileInput) (models.HealthProfile, error) {
	profile, err := buildHealthProfile(userID, input)
	if err != nil {
		return models.HealthProfile{}, err
	}
	if err := service.profiles.Upsert(ctx, &profile); err != nil {
		return models.HealthProfile{}, storageError("save health profile", err)
	}
	return profile, nil
}

func (service *HealthProfileService) Get(ctx context.Context, userID uint) (models.HealthProfile, bool, error) {
	profile, found, err := service.profiles.FindByUser(ctx, userID)
	if err != nil {
		return models.HealthProfile{}, false, storageError("load health profile", err)
	}
	return profile, found, nil
}

func buildHealthProfile(userID uint, input HealthProfileInput) (models.HealthProfile, error) {
	if input.Age != nil && (*input.Age < 0 || *input.Age > 150) {
		return models.HealthProfile{}, ErrHealthProfileInvalid
	}
	for _, measurement := range []*float64{input.Height, input.Weight, input.Glucose, input.Cholesterol} {
		if measurement != nil && (*measurement <= 0 || *measurement > 1000) {
			return models.HealthProfile{}, ErrHealthProfileInvalid
		}
	}

	activityTypes := make([]string, 0, len(input.ActivityTypes))
	for _, activity := range input.ActivityTypes {
		if trimmed := strings.TrimSpace(activity); trimmed != "" {
			activityTypes = append(activityTypes, trimmed)
		}
	}

	profile := models.HealthProfile{
		UserID:            userID,
		Age:               input.Age,
		Gender:            strings.TrimSpace(input.Gender),
		Height:            input.Height,
		Weight:            input.Weight,
		BloodType:         strings.TrimSpace(input.BloodType),
		ActivityLevel:     strings.TrimSpace(input.ActivityLevel),
		HealthGoal:        strings.TrimSpace(input.HealthGoal),
		ActivityTypes:     strings.Join(activityTypes, ","),
		BloodPressure:     strings.TrimSpace(input.BloodPressure),
		Glucose:           input.Glucose,
		Cholesterol:       input.Cholesterol,
		HasDiabetes:       input.HasDiabetes,
		HasHypertension:   input.HasHypertension,
		HasHeartCondition: input.HasHeartCondition,
		Smoker:            input.Smoker,
		AlcoholConsumer:   input.AlcoholConsumer,
		Medications:       strings.TrimSpace(input.Medications),
		Allergies:         strings.TrimSpace(input.Allergies),
		MedicalConditions: strings.TrimSpace(input.MedicalConditions),
		UpdatedAt:         time.Now().UTC(),
	}
	for _, text := range []string{profile.Medications, profile.Allergies, profile.MedicalConditions, profile.ActivityTypes} {
		if len([]rune(text)) > maxHealthTextLength {
			return models.HealthProfile{}, ErrHealthProfileInvalid
		}
	}
	return profile, nil
}
