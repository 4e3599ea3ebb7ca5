package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	HealthProfiles *HealthProfileRepository
	RevokedTokens  *RevokedTokenRepository
	MetricLogs     *MetricLogRepository
	MetricGoals    *MetricGoalRepository
	Goals          *GoalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		HealthProfiles: NewHealthProfileRepository(database),
		RevokedTokens:  NewRevokedTokenRepository(database),
		MetricLogs:     NewMetricLogRepository(database),
		MetricGoals:    NewMetricGoalRepository(database),
		Goals:          NewGoalRepository(database),
	}
}
