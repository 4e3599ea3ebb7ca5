package api

import (
	"github.com/terraincognita07/vitalog/internal/db"
	"github.com/terraincognita07/vitalog/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.profileService = services.NewProfileService(handler.repositories.Users)
	handler.healthService = services.NewHealthProfileService(handler.repositories.HealthProfiles)
	handler.sessionService = services.NewSessionService(handler.repositories.RevokedTokens)
	handler.metricService = services.NewMetricService(handler.repositories.MetricLogs, handler.repositories.MetricGoals, handler.clock)
	handler.goalEngine = services.NewGoalEngine(handler.repositories.Goals, handler.metricService)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}
	if handler.clock == nil {
		handler.clock = services.NewSystemClock(handler.location)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(handler.repositories.Users)
	}
	if handler.healthService == nil {
		handler.healthService = services.NewHealthProfileService(handler.repositories.HealthProfiles)
	}
	if handler.sessionService == nil {
		handler.sessionService = services.NewSessionService(handler.repositories.RevokedTokens)
	}
	if handler.metricService == nil {
		handler.metricService = services.NewMetricService(handler.repositories.MetricLogs, handler.repositories.MetricGoals, handler.clock)
	}
	if handler.goalEngine == nil {
		handler.goalEngine = services.NewGoalEngine(handler.repositories.Goals, handler.metricService)
	}
}

// SessionService exposes the revocation store so that main can wire the
// maintenance scheduler to the same repositories.
func (handler *Handler) SessionService() *services.SessionService {
	handler.ensureDependencies()
	return handler.sessionService
}
