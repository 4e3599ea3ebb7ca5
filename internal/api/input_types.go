package api

type registerInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateNameInput struct {
	FullName string `json:"full_name"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password"`
}

type healthProfileInput struct {
	Age               *int     `json:"age"`
	Gender            string   `json:"gender"`
	Height            *float64 `json:"height"`
	Weight            *float64 `json:"weight"`
	BloodType         string   `json:"blood_type"`
	ActivityLevel     string   `json:"activity_level"`
	HealthGoal        string   `json:"health_goal"`
	ActivityTypes     []string `json:"activity_types"`
	BloodPressure     string   `json:"blood_pressure"`
	Glucose           *float64 `json:"glucose"`
	Cholesterol       *float64 `json:"cholesterol"`
	HasDiabetes       bool     `json:"has_diabetes"`
	HasHypertension   bool     `json:"has_hypertension"`
	HasHeartCondition bool     `json:"has_heart_condition"`
	Smoker            bool     `json:"smoker"`
	AlcoholConsumer   bool     `json:"alcohol_consumer"`
	Medications       string   `json:"medications"`
	Allergies         string   `json:"allergies"`
	MedicalConditions string   `json:"medical_conditions"`
}

type goalInput struct {
	Type        string
	TargetValue float64
	Period      string
}
