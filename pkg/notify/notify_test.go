package notify

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSummary(t *testing.T) {
	if got := Summary("+100", "+200", "hi", "hello"); got != "+100<->+200: Received hi and responded hello" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := Summary("+100", "+200", "hi", ""); got != "+100<->+200: Received hi, but found no response." {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestNotify_Slack(t *testing.T) {
	var got struct {
		Text string `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(testLogger())
	cfg := entity.Config{entity.ConfigSlack: "TRUE", entity.ConfigSlackWebhook: srv.URL}

	if !n.Enabled(cfg) {
		t.Fatal("expected notifier to be enabled")
	}
	if err := n.Notify(context.Background(), cfg, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("expected text hello, got %q", got.Text)
	}
}

func TestNotify_SlackMissingWebhook(t *testing.T) {
	n := New(testLogger())

	err := n.Notify(context.Background(), entity.Config{entity.ConfigSlack: "TRUE"}, "hello")
	if !errors.Is(err, ErrMissingWebhook) {
		t.Errorf("expected ErrMissingWebhook, got %v", err)
	}
}

func TestNotify_Disabled(t *testing.T) {
	n := New(testLogger())
	cfg := entity.Config{entity.ConfigSlack: "FALSE"}

	if n.Enabled(cfg) {
		t.Error("expected notifier to be disabled")
	}
	if err := n.Notify(context.Background(), cfg, "hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNotify_Telegram(t *testing.T) {
	var mu sync.Mutex
	var sent []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			mu.Lock()
			sent = append(sent, r.FormValue("chat_id")+":"+r.FormValue("text"))
			mu.Unlock()
			_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	n := NewWithTelegramEndpoint(testLogger(), srv.URL+"/bot%s/%s")
	cfg := entity.Config{
		entity.ConfigTelegram:       true,
		entity.ConfigTelegramToken:  "123:abc",
		entity.ConfigTelegramChatID: "42",
	}

	for i := 0; i < 2; i++ {
		if err := n.Notify(context.Background(), cfg, "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 2 || sent[0] != "42:hello" {
		t.Errorf("unexpected sent messages %v", sent)
	}
}

func TestNotify_TelegramMissingChat(t *testing.T) {
	n := New(testLogger())
	cfg := entity.Config{entity.ConfigTelegram: "TRUE", entity.ConfigTelegramToken: "123:abc"}

	if err := n.Notify(context.Background(), cfg, "hello"); !errors.Is(err, ErrMissingChat) {
		t.Errorf("expected ErrMissingChat, got %v", err)
	}
}
