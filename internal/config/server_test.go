package config

import (
	"context"
	"encoding/json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"intentbot/database/sqlite"
	"intentbot/pkg/redis"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, configYAML string) *Server {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithDB(db),
		WithRedisServer(redis.NewMemory()),
		WithTokenSigner(),
		WithUtils(),
		WithBcryptUtils(),
	)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { srv.Shutdown(time.Second) })

	ctx := context.Background()
	if err := srv.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := srv.Bootstrap(ctx, path); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	srv.RegisterHandler()
	if err := srv.mount(); err != nil {
		t.Fatalf("mount: %v", err)
	}
	return srv
}

func call(t *testing.T, srv *Server, method, path, body string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := srv.engine.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestServer_WebhookAnswersFromCorpus(t *testing.T) {
	srv := newTestServer(t, "score: 0.8\nmessage: \"TRUE\"\n")

	resp := call(t, srv, "POST", "/api/v1/intents", `{"name":"greeting","response_text":"Hi there"}`, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create intent: expected 201, got %d", resp.StatusCode)
	}
	var intent struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&intent)

	resp = call(t, srv, "POST", "/api/v1/examples", `{"sample":"hello","intent_id":"`+intent.ID+`"}`, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create example: expected 201, got %d", resp.StatusCode)
	}

	resp = call(t, srv, "POST", "/", `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"Hello"}}`, nil)
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(raw) != `{"messages":[{"txt":"Hi there"}]}` {
		t.Fatalf("unexpected webhook reply %d %s", resp.StatusCode, raw)
	}

	resp = call(t, srv, "GET", "/", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("health check: expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_AdminRequiresLoginWhenPasswordSet(t *testing.T) {
	srv := newTestServer(t, "password: hunter2\n")

	if resp := call(t, srv, "GET", "/api/v1/intents", "", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", resp.StatusCode)
	}

	if resp := call(t, srv, "POST", "/api/v1/auth/login", `{"password":"wrong"}`, nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}

	resp := call(t, srv, "POST", "/api/v1/auth/login", `{"password":"hunter2"}`, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "autotoken" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("login did not set the session cookie")
	}

	if resp := call(t, srv, "GET", "/api/v1/intents", "", session); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with session, got %d", resp.StatusCode)
	}

	resp = call(t, srv, "GET", "/api/v1/config", "", session)
	var cfg struct {
		Config map[string]interface{} `json:"config"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Config["password"] != "********" {
		t.Errorf("password must be redacted, got %v", cfg.Config["password"])
	}

	if resp := call(t, srv, "POST", "/", `{"type":"new_message","msg":{"src":"+1","dst":"+2","txt":"hello"}}`, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("webhook must stay open, got %d", resp.StatusCode)
	}
}
