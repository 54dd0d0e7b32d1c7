package intentHandler

import (
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	"intentbot/database/sqlite"
	intents "intentbot/internal/api/intent"
	intentRepository "intentbot/internal/api/intent/repository"
	intentService "intentbot/internal/api/intent/service"
	"intentbot/internal/entity"
	"intentbot/internal/middleware"
	"intentbot/internal/resolver"
	"intentbot/pkg/utils"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticConfig entity.Config

func (s staticConfig) CurrentConfig(ctx context.Context) (entity.Config, error) {
	return entity.Config(s), nil
}

func newTestApp(t *testing.T, cfg entity.Config) *fiber.App {
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

	repo := intentRepository.New(db, logger)
	svc := intentService.NewIntentService(logger, repo, resolver.New(repo.Corpus(), nil), utils.New())
	mw := middleware.New(logger, staticConfig(cfg), nil, nil)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestIntentLifecycle(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	var intent intents.IntentResponse
	if code := doJSON(t, app, "POST", "/api/v1/intents", `{"name":"greeting","response_text":"Hi there"}`, &intent); code != fiber.StatusCreated {
		t.Fatalf("create intent: expected 201, got %d", code)
	}

	var example intents.ExampleResponse
	body := `{"sample":"hello","intent_id":"` + intent.ID + `"}`
	if code := doJSON(t, app, "POST", "/api/v1/examples", body, &example); code != fiber.StatusCreated {
		t.Fatalf("create example: expected 201, got %d", code)
	}

	var preview intents.TestResponse
	if code := doJSON(t, app, "POST", "/api/v1/intents/test", `{"text":"  Hello "}`, &preview); code != fiber.StatusOK {
		t.Fatalf("test text: expected 200, got %d", code)
	}
	if preview.Outcome != "matched" || preview.Text != "Hi there" {
		t.Errorf("unexpected preview %+v", preview)
	}

	if code := doJSON(t, app, "DELETE", "/api/v1/intents/"+intent.ID, "", nil); code != fiber.StatusOK {
		t.Fatalf("delete intent: expected 200, got %d", code)
	}

	if code := doJSON(t, app, "GET", "/api/v1/examples/"+example.ID, "", nil); code != fiber.StatusNotFound {
		t.Errorf("example should be gone with its intent, got %d", code)
	}
}

func TestCreateIntent_Validation(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	var errBody struct {
		Code string `json:"code"`
	}
	code := doJSON(t, app, "POST", "/api/v1/intents", `{"name":"greeting"}`, &errBody)
	if code != fiber.StatusBadRequest || errBody.Code != "VALIDATION_ERROR" {
		t.Errorf("expected 400 VALIDATION_ERROR, got %d %s", code, errBody.Code)
	}
}

func TestGetIntent_NotFound(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	var errBody struct {
		Code string `json:"code"`
	}
	code := doJSON(t, app, "GET", "/api/v1/intents/missing", "", &errBody)
	if code != fiber.StatusNotFound || errBody.Code != "INTENT_NOT_FOUND" {
		t.Errorf("expected 404 INTENT_NOT_FOUND, got %d %s", code, errBody.Code)
	}
}

func TestAdminRoutes_RequireSessionWhenPasswordSet(t *testing.T) {
	app := newTestApp(t, entity.Config{entity.ConfigPassword: "secret", entity.ConfigUniqueID: "a1"})

	if code := doJSON(t, app, "GET", "/api/v1/intents", "", nil); code != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
}

func TestImport(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	req := httptest.NewRequest("POST", "/api/v1/intents/import", strings.NewReader("intents:\n  - name: hi\n    response: Hello\n    examples: [hi, hey]\n"))
	req.Header.Set("Content-Type", "application/yaml")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var list intents.IntentListResponse
	if code := doJSON(t, app, "GET", "/api/v1/intents", "", &list); code != fiber.StatusOK {
		t.Fatalf("list: expected 200, got %d", code)
	}
	if list.Total != 1 || len(list.Intents[0].Examples) != 2 {
		t.Errorf("unexpected list %+v", list)
	}
}
