package settingsHandler

import (
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	xbcrypt "golang.org/x/crypto/bcrypt"
	"intentbot/database"
	"intentbot/database/sqlite"
	intentRepository "intentbot/internal/api/intent/repository"
	"intentbot/internal/api/settings"
	settingsRepository "intentbot/internal/api/settings/repository"
	settingsService "intentbot/internal/api/settings/service"
	"intentbot/internal/middleware"
	"intentbot/pkg/bcrypt"
	"intentbot/pkg/utils"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := settingsService.NewSettingsService(
		logger,
		settingsRepository.New(db, logger),
		intentRepository.New(db, logger),
		bcrypt.NewWithCost(xbcrypt.MinCost),
		utils.New(),
		nil,
	)
	if _, err := svc.Bootstrap(context.Background(), ""); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	mw := middleware.New(logger, svc, nil, nil)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func TestConfigRoundTrip(t *testing.T) {
	app := newTestApp(t)

	code, _ := send(t, app, "PUT", "/api/v1/config", `{"score":0.5,"default_response":"Sorry?"}`)
	if code != fiber.StatusOK {
		t.Fatalf("update: expected 200, got %d", code)
	}

	code, body := send(t, app, "GET", "/api/v1/config", "")
	if code != fiber.StatusOK {
		t.Fatalf("get: expected 200, got %d", code)
	}

	var resp settings.ConfigResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Config["score"] != 0.5 || resp.Config["default_response"] != "Sorry?" {
		t.Errorf("unexpected config %v", resp.Config)
	}
	if resp.Labels["score"] != "Score" {
		t.Errorf("unexpected labels %v", resp.Labels)
	}
}

func TestPasswordLocksAdminRoutes(t *testing.T) {
	app := newTestApp(t)

	if code, _ := send(t, app, "PUT", "/api/v1/config", `{"password":"hunter2"}`); code != fiber.StatusOK {
		t.Fatalf("update: expected 200, got %d", code)
	}

	if code, _ := send(t, app, "GET", "/api/v1/config", ""); code != fiber.StatusUnauthorized {
		t.Errorf("expected 401 once a password is set, got %d", code)
	}

	if code, _ := send(t, app, "GET", "/api/v1/metadata", ""); code != fiber.StatusOK {
		t.Errorf("metadata should stay public, got %d", code)
	}
}

func TestClearCollection_Unknown(t *testing.T) {
	app := newTestApp(t)

	code, body := send(t, app, "DELETE", "/api/v1/config/collections/app_config", "")
	if code != fiber.StatusBadRequest || !strings.Contains(string(body), "UNKNOWN_COLLECTION") {
		t.Errorf("expected 400 UNKNOWN_COLLECTION, got %d %s", code, body)
	}
}

func TestBackup_NotConfigured(t *testing.T) {
	app := newTestApp(t)

	if code, _ := send(t, app, "POST", "/api/v1/config/backup", ""); code != fiber.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}
}
