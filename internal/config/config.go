// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const minSecretKeyLength = 32

var insecureSecretPlaceholders = []string{
	"change_me_in_production",
	"replace_with_at_least_32_random_characters",
}

type RateRule struct {
	Requests int
	Window   time.Duration
}

type Config struct {
	Port      string
	DBPath    string
	Location  *time.Location
	SecretKey string
	LogLevel  logrus.Level
	LogFormat string

	GlobalRate RateRule
	AuthRate   RateRule
	LogRate    RateRule
	GoalRate   RateRule
}

type environment struct {
	Port      string `env:"PORT,default=8080"`
	DBPath    string `env:"DB_PATH"`
	Timezone  string `env:"TZ,default=UTC"`
	SecretKey string `env:"SECRET_KEY"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	GlobalRequests int           `env:"RATE_LIMIT_GLOBAL,default=300"`
	GlobalWindow   time.Duration `env:"RATE_LIMIT_GLOBAL_WINDOW,default=15m"`
	AuthRequests   int           `env:"RATE_LIMIT_AUTH,default=10"`
	AuthWindow     time.Duration `env:"RATE_LIMIT_AUTH_WINDOW,default=15m"`
	LogRequests    int           `env:"RATE_LIMIT_LOG,default=30"`
	LogWindow      time.Duration `env:"RATE_LIMIT_LOG_WINDOW,default=1m"`
	GoalRequests   int           `env:"RATE_LIMIT_GOAL,default=20"`
	GoalWindow     time.Duration `env:"RATE_LIMIT_GOAL_WINDOW,default=1h"`
}

// Load applies envFile (when it exists) without overriding variables that
// are already set, then decodes and validates the environment.
func Load(envFile string) (Config, error) {
	if strings.TrimSpace(envFile) != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var env environment
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return env.resolve()
}

func (env environment) resolve() (Config, error) {
	secretKey, err := resolveSecretKey(env.SecretKey)
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort(env.Port)
	if err != nil {
		return Config{}, err
	}
	location, err := time.LoadLocation(strings.TrimSpace(env.Timezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TZ %q: %w", env.Timezone, err)
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(env.LogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	format := strings.ToLower(strings.TrimSpace(env.LogFormat))
	if format != "text" && format != "json" {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: expected text or json", env.LogFormat)
	}

	dbPath := strings.TrimSpace(env.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "vitalog.db")
	}

	cfg := Config{
		Port:       port,
		DBPath:     dbPath,
		Location:   location,
		SecretKey:  secretKey,
		LogLevel:   level,
		LogFormat:  format,
		GlobalRate: RateRule{Requests: env.GlobalRequests, Window: env.GlobalWindow},
		AuthRate:   RateRule{Requests: env.AuthRequests, Window: env.AuthWindow},
		LogRate:    RateRule{Requests: env.LogRequests, Window: env.LogWindow},
		GoalRate:   RateRule{Requests: env.GoalRequests, Window: env.GoalWindow},
	}
	for name, rule := range map[string]RateRule{
		"RATE_LIMIT_GLOBAL": cfg.GlobalRate,
		"RATE_LIMIT_AUTH":   cfg.AuthRate,
		"RATE_LIMIT_LOG":    cfg.LogRate,
		"RATE_LIMIT_GOAL":   cfg.GoalRate,
	} {
		if rule.Requests <= 0 || rule.Window <= 0 {
			return Config{}, fmt.Errorf("%s: requests and window must be positive", name)
		}
	}
	return cfg, nil
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	for _, placeholder := range insecureSecretPlaceholders {
		if strings.EqualFold(secret, placeholder) {
			return "", errors.New("SECRET_KEY uses an insecure placeholder value")
		}
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q: expected 1-65535", raw)
	}
	return strconv.Itoa(value), nil
}
