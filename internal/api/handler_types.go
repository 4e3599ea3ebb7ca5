package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/vitalog/internal/db"
	"github.com/terraincognita07/vitalog/internal/metrics"
	"github.com/terraincognita07/vitalog/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	minSecretKeyLength  = 32
)

type Handler struct {
	db        *gorm.DB
	secretKey []byte
	location  *time.Location
	logger    *logrus.Logger
	metrics   *metrics.Collector
	clock     services.Clock

	repositories   *db.Repositories
	authService    *services.AuthService
	profileService *services.ProfileService
	healthService  *services.HealthProfileService
	sessionService *services.SessionService
	metricService  *services.MetricService
	goalEngine     *services.GoalEngine

	loginLimiter *attemptLimiter
	limiters     *requestLimiters
}

// HandlerConfig carries everything NewHandler needs besides the database.
// Clock is optional and defaults to the system clock in Location.
type HandlerConfig struct {
	SecretKey  string
	Location   *time.Location
	Logger     *logrus.Logger
	Metrics    *metrics.Collector
	RateLimits RateLimits
	Clock      services.Clock
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(config.SecretKey) < minSecretKeyLength {
		return nil, errors.New("secret key must be at least 32 characters")
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	collector := config.Metrics
	if collector == nil {
		collector = metrics.NewCollector()
	}
	clock := config.Clock
	if clock == nil {
		clock = services.NewSystemClock(location)
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(config.SecretKey),
		location:     location,
		logger:       logger,
		metrics:      collector,
		clock:        clock,
		loginLimiter: newAttemptLimiter(),
		limiters:     newRequestLimiters(config.RateLimits.withDefaults()),
	}
	return handler.withDependencies(database), nil
}
