package logsHandler

import (
	"context"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	"intentbot/internal/middleware"
	"intentbot/pkg/logstream"
	websocketPkg "intentbot/pkg/websocket"
	"io"
	"net"
	"testing"
	"time"
)

type staticConfig entity.Config

func (s staticConfig) CurrentConfig(ctx context.Context) (entity.Config, error) {
	return entity.Config(s), nil
}

func startServer(t *testing.T, cfg entity.Config) (string, *logrus.Logger, *logstream.Hub) {
	t.Helper()

	hub := logstream.NewHub()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(logstream.NewHook(hub, logrus.InfoLevel))

	mw := middleware.New(logger, staticConfig(cfg), nil, nil)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	New(logger, mw, hub).Start(app.Group("/api/v1"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { app.ShutdownWithTimeout(time.Second) })

	return "http://" + ln.Addr().String(), logger, hub
}

func TestLogStream_DeliversEntries(t *testing.T) {
	baseURL, logger, hub := startServer(t, entity.Config{})

	client, err := websocketPkg.NewLogTail(baseURL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan logstream.Entry, 16)
	streamErr := make(chan error, 1)
	go func() {
		streamErr <- client.Stream(ctx, func(e logstream.Entry) { received <- e })
	}()

	deadline := time.Now().Add(5 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	logger.WithField("src", "+1").Info("New message")

	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-received:
			if e.Message != "New message" {
				continue
			}
			if e.Level != "info" || e.Fields["src"] != "+1" {
				t.Errorf("unexpected entry %+v", e)
			}
			cancel()
			if err := <-streamErr; err != nil {
				t.Errorf("stream ended with %v", err)
			}
			return
		case err := <-streamErr:
			t.Fatalf("stream ended early: %v", err)
		case <-timeout:
			t.Fatal("timed out waiting for log entry")
		}
	}
}

func TestLogStream_RequiresSession(t *testing.T) {
	baseURL, _, hub := startServer(t, entity.Config{entity.ConfigPassword: "$2a$04$abcdefghijklmnopqrstuu"})

	client, err := websocketPkg.NewLogTail(baseURL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Stream(ctx, func(logstream.Entry) {}); err == nil {
		t.Fatal("expected handshake to be rejected")
	}
	if hub.Subscribers() != 0 {
		t.Errorf("rejected viewer must not subscribe")
	}
}
