package intentHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	intentService "intentbot/internal/api/intent/service"
	"intentbot/internal/middleware"
)

type IntentHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	intentService intentService.IIntentService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is intentService.IIntentService,
) *IntentHandler {
	return &IntentHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		intentService: is,
	}
}

func (h *IntentHandler) Start(srv fiber.Router) {
	intents := srv.Group("/intents", h.middleware.NewConfigMiddleware, h.middleware.NewSessionMiddleware)

	intents.Get("", h.GetAllIntents)
	intents.Post("", h.CreateIntent)
	intents.Delete("", h.DeleteAllIntents)
	intents.Post("/test", h.TestText)
	intents.Post("/import", h.ImportIntents)
	intents.Get("/:id", h.GetIntentByID)
	intents.Put("/:id", h.UpdateIntent)
	intents.Delete("/:id", h.DeleteIntent)

	examples := srv.Group("/examples", h.middleware.NewConfigMiddleware, h.middleware.NewSessionMiddleware)

	examples.Post("", h.CreateExample)
	examples.Get("/:id", h.GetExampleByID)
	examples.Put("/:id", h.UpdateExample)
	examples.Delete("/:id", h.DeleteExample)
}
