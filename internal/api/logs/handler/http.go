package logsHandler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"intentbot/internal/middleware"
	"intentbot/pkg/logstream"
)

type LogsHandler struct {
	log        *logrus.Logger
	middleware middleware.Middleware
	hub        logstream.IHub
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	hub logstream.IHub,
) *LogsHandler {
	return &LogsHandler{
		log:        log,
		middleware: middleware,
		hub:        hub,
	}
}

func (h *LogsHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	logs := srv.Group("/log", h.middleware.NewConfigMiddleware, h.middleware.NewSessionMiddleware)
	logs.Use("/ws", wsMiddleware)
	logs.Get("/ws", websocket.New(h.handleLogStream))
}
