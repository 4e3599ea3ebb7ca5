package models

import "time"

type HealthProfile struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	UserID            uint      `gorm:"not null;uniqueIndex" json:"-"`
	Age               *int      `json:"age"`
	Gender            string    `json:"gender"`
	Height            *float64  `json:"height"`
	Weight            *float64  `json:"weight"`
	BloodType         string    `json:"blood_type"`
	ActivityLevel     string    `json:"activity_level"`
	HealthGoal        string    `json:"health_goal"`
	ActivityTypes     string    `json:"activity_types"`
	BloodPressure     string    `json:"blood_pressure"`
	Glucose           *float64  `json:"glucose"`
	Cholesterol       *float64  `json:"cholesterol"`
	HasDiabetes       bool      `gorm:"not null;default:false" json:"has_diabetes"`
	HasHypertension   bool      `gorm:"not null;default:false" json:"has_hypertension"`
	HasHeartCondition bool      `gorm:"not null;default:false" json:"has_heart_condition"`
	Smoker            bool      `gorm:"not null;default:false" json:"smoker"`
	AlcoholConsumer   bool      `gorm:"not null;default:false" json:"alcohol_consumer"`
	Medications       string    `json:"medications"`
	Allergies         string    `json:"allergies"`
	MedicalConditions string    `json:"medical_conditions"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
