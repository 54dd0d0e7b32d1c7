package chatbotHandler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	chatbotService "intentbot/internal/api/chatbot/service"
	"intentbot/internal/middleware"
)

type ChatbotHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	chatbotService chatbotService.IChatbotService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs chatbotService.IChatbotService,
) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log,
		middleware:     middleware,
		chatbotService: cs,
	}
}

func (h *ChatbotHandler) Start(srv fiber.Router) {
	messages := srv.Group("/messages", h.middleware.NewConfigMiddleware, h.middleware.NewSessionMiddleware)
	messages.Get("", h.GetMessages)
}

// StartWebhook mounts the platform callback. It is never behind the admin
// session.
func (h *ChatbotHandler) StartWebhook(root fiber.Router) {
	root.Post("/", h.middleware.NewRateLimiter, h.middleware.NewConfigMiddleware, h.HandleWebhook)
}
