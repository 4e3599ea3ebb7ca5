package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/vitalog/internal/db"
	"github.com/terraincognita07/vitalog/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-characters"

var testToday = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	return newTestAppWithLimits(t, RateLimits{})
}

func newTestAppWithLimits(t *testing.T, limits RateLimits) testApp {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	databasePath := filepath.Join(t.TempDir(), "vitalog-api-test.db")
	database, err := db.OpenSQLite(databasePath, logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, HandlerConfig{
		SecretKey:  testSecretKey,
		Location:   time.UTC,
		Logger:     logger,
		RateLimits: limits,
		Clock:      services.FixedClock{Day: testToday},
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return testApp{app: app, database: database, handler: handler}
}

type testResponse struct {
	status  int
	headers http.Header
	body    []byte
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.body, target); err != nil {
		t.Fatalf("decode response %q: %v", string(response.body), err)
	}
}

func (response testResponse) errorMessage(t *testing.T) string {
	t.Helper()
	payload := map[string]any{}
	response.decode(t, &payload)
	message, _ := payload["error"].(string)
	return message
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any) testResponse {
	t.Helper()

	var reader io.Reader
	switch value := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if reader != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return testResponse{status: response.StatusCode, headers: response.Header, body: payload}
}

func expectStatus(t *testing.T, response testResponse, expected int) {
	t.Helper()
	if response.status != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.status, string(response.body))
	}
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name":        "Test User",
		"email":            email,
		"password":         "StrongPass1",
		"confirm_password": "StrongPass1",
	})
	expectStatus(t, response, fiber.StatusCreated)

	payload := struct {
		Token string `json:"token"`
	}{}
	response.decode(t, &payload)
	if payload.Token == "" {
		t.Fatal("expected token in register response")
	}
	return payload.Token
}
