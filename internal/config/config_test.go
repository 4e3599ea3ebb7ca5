package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestResolveSecretKey(t *testing.T) {
	for _, raw := range []string{"", "   ", "change_me_in_production", "replace_with_at_least_32_random_characters", "too-short-secret"} {
		if _, err := resolveSecretKey(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}

	secret, err := resolveSecretKey("  " + validSecret + " ")
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != validSecret {
		t.Fatalf("expected %q, got %q", validSecret, secret)
	}
}

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("")
	if err != nil || port != "8080" {
		t.Fatalf("expected default port 8080, got %q (%v)", port, err)
	}

	port, err = resolvePort("9090")
	if err != nil || port != "9090" {
		t.Fatalf("expected port 9090, got %q (%v)", port, err)
	}

	for _, raw := range []string{"0", "70000", "not-a-number", "-1"} {
		if _, err := resolvePort(raw); err == nil {
			t.Fatalf("expected port %q to fail", raw)
		}
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("TZ", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != filepath.Join("data", "vitalog.db") {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.LogLevel != logrus.InfoLevel || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log settings: %v %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.LogRate != (RateRule{Requests: 30, Window: time.Minute}) {
		t.Fatalf("unexpected log rate: %+v", cfg.LogRate)
	}
	if cfg.GoalRate != (RateRule{Requests: 20, Window: time.Hour}) {
		t.Fatalf("unexpected goal rate: %+v", cfg.GoalRate)
	}
}

func TestLoadReadsEnvFileWithoutOverridingEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	contents := "SECRET_KEY=" + validSecret + "\nPORT=7070\nLOG_FORMAT=json\nRATE_LIMIT_LOG=5\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("SECRET_KEY", "")
	t.Setenv("PORT", "6060")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("RATE_LIMIT_LOG", "")
	unsetForTest(t, "SECRET_KEY", "LOG_FORMAT", "RATE_LIMIT_LOG")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "6060" {
		t.Fatalf("expected process environment to win, got port %q", cfg.Port)
	}
	if cfg.LogFormat != "json" || cfg.LogRate.Requests != 5 {
		t.Fatalf("expected values from env file, got %+v", cfg)
	}
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := map[string]string{
		"TZ":              "Mars/Olympus_Mons",
		"LOG_LEVEL":       "chatty",
		"LOG_FORMAT":      "xml",
		"RATE_LIMIT_GOAL": "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("SECRET_KEY", validSecret)
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected %s=%q to be rejected", key, value)
			}
		})
	}
}

// unsetForTest removes keys registered with t.Setenv so godotenv sees them as
// absent. The t.Setenv cleanup still restores the original values.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}
