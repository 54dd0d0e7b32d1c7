package chatbotHandler

import (
	"context"
	"encoding/json"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	"intentbot/database/sqlite"
	"intentbot/internal/api/chatbot"
	chatbotRepository "intentbot/internal/api/chatbot/repository"
	chatbotService "intentbot/internal/api/chatbot/service"
	intentRepository "intentbot/internal/api/intent/repository"
	"intentbot/internal/entity"
	"intentbot/internal/middleware"
	"intentbot/internal/resolver"
	"intentbot/pkg/utils"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticConfig entity.Config

func (s staticConfig) CurrentConfig(ctx context.Context) (entity.Config, error) {
	return entity.Config(s), nil
}

func newTestApp(t *testing.T, cfg entity.Config) *fiber.App {
	t.Helper()
	app, _ := newTestAppWithDB(t, cfg)
	return app
}

func newTestAppWithDB(t *testing.T, cfg entity.Config) (*fiber.App, *sqlx.DB) {
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

	intentRepo := intentRepository.New(db, logger)
	client, _ := intentRepo.NewClient(false)
	now := time.Now().UTC()
	ctx := context.Background()
	if err := client.Intents.CreateIntent(ctx, entity.Intent{ID: "i1", Name: "greeting", ResponseText: "Hi there", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("seed intent: %v", err)
	}
	if err := client.Examples.CreateExample(ctx, entity.Example{ID: "e1", Sample: "hello", IntentID: "i1", CreatedAt: now}); err != nil {
		t.Fatalf("seed example: %v", err)
	}

	svc := chatbotService.NewChatbotService(
		logger,
		chatbotRepository.New(db, logger),
		resolver.New(intentRepo.Corpus(), nil),
		nil,
		utils.New(),
	)
	mw := middleware.New(logger, staticConfig(cfg), nil, nil)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h := New(logger, mw, svc)
	h.StartWebhook(app)
	h.Start(app.Group("/api/v1"))
	return app, db
}

func post(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("post webhook: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestWebhook(t *testing.T) {
	cfg := entity.Config{entity.ConfigMessage: "TRUE", entity.ConfigWhisper: "TRUE"}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "match replies on both channels",
			body:     `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"Hello","direction":"ingress"}}`,
			wantCode: fiber.StatusOK,
			wantBody: `{"messages":[{"txt":"Hi there"}],"whispers":[{"txt":"Hi there"}]}`,
		},
		{
			name:     "no output is an empty reply",
			body:     `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"zzzzqqqq","direction":"ingress"}}`,
			wantCode: fiber.StatusOK,
			wantBody: ``,
		},
		{
			name:     "session end is ignored",
			body:     `{"type":"session_end","msg":{"src":"+1","dst":"+2","txt":"hello"}}`,
			wantCode: fiber.StatusOK,
			wantBody: `{}`,
		},
		{
			name:     "new session is ignored",
			body:     `{"type":"new_session"}`,
			wantCode: fiber.StatusOK,
			wantBody: `{}`,
		},
		{
			name:     "egress is ignored",
			body:     `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"hello","direction":"egress"}}`,
			wantCode: fiber.StatusOK,
			wantBody: `{}`,
		},
		{
			name:     "missing message is ignored",
			body:     `{"type":"new_message"}`,
			wantCode: fiber.StatusOK,
			wantBody: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, cfg)

			code, body := post(t, app, tt.body)
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d (%s)", tt.wantCode, code, body)
			}
			if body != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, body)
			}
		})
	}
}

func TestWebhook_InvalidJSON(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	code, _ := post(t, app, `{"type":`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestWebhook_TraceKeepsInvalidEvents(t *testing.T) {
	app, db := newTestAppWithDB(t, entity.Config{entity.ConfigTrace: "TRUE", entity.ConfigMessage: "TRUE"})

	bodies := []string{
		`{"type":`,
		`{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"hello"}}`,
	}
	for _, body := range bodies {
		post(t, app, body)
	}

	var stored []string
	if err := db.Select(&stored, "SELECT body FROM traces"); err != nil {
		t.Fatalf("select traces: %v", err)
	}
	if len(stored) != len(bodies) {
		t.Fatalf("expected %d traces, got %d", len(bodies), len(stored))
	}
	seen := map[string]bool{}
	for _, body := range stored {
		seen[body] = true
	}
	for _, body := range bodies {
		if !seen[body] {
			t.Errorf("missing trace for %q", body)
		}
	}
}

func TestWebhook_OpenEvenWithPassword(t *testing.T) {
	app := newTestApp(t, entity.Config{entity.ConfigPassword: "$2a$04$abcdefghijklmnopqrstuu", entity.ConfigMessage: "TRUE"})

	code, body := post(t, app, `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"hello"}}`)
	if code != fiber.StatusOK || body != `{"messages":[{"txt":"Hi there"}]}` {
		t.Fatalf("unexpected reply %d %s", code, body)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/messages", nil))
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 for admin route, got %d", resp.StatusCode)
	}
}

func TestGetMessages(t *testing.T) {
	app := newTestApp(t, entity.Config{})

	for _, text := range []string{"hello", "zzzzqqqq", "hello"} {
		post(t, app, `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"`+text+`"}}`)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/messages?page=1&limit=2", nil))
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var page chatbot.MessageListResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 3 || len(page.Messages) != 2 || page.Limit != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Messages[0].Outcome != "matched" {
		t.Errorf("expected newest record first, got %+v", page.Messages[0])
	}
}
