package settingsHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	settingsService "intentbot/internal/api/settings/service"
	"intentbot/internal/middleware"
)

type SettingsHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	settingsService settingsService.ISettingsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss settingsService.ISettingsService,
) *SettingsHandler {
	return &SettingsHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		settingsService: ss,
	}
}

func (h *SettingsHandler) Start(srv fiber.Router) {
	srv.Get("/metadata", h.GetMetadata)

	config := srv.Group("/config", h.middleware.NewConfigMiddleware, h.middleware.NewSessionMiddleware)

	config.Get("", h.GetConfig)
	config.Put("", h.UpdateConfig)
	config.Get("/collections", h.GetCollections)
	config.Delete("/collections/:collection", h.ClearCollection)
	config.Post("/backup", h.Backup)
}
