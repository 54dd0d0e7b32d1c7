package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
)

const (
	ConfigKey      = "config"
	ConfigErrorKey = "config_error"
)

// NewConfigMiddleware loads the configuration once per request. A storage
// failure leaves an empty document so the webhook falls back to defaults;
// the failure is kept in Locals and NewSessionMiddleware refuses the request.
func (m *middleware) NewConfigMiddleware(ctx *fiber.Ctx) error {
	cfg, err := m.configs.CurrentConfig(contextPkg.FromFiberCtx(ctx))
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to load configuration, using defaults")
		cfg = entity.Config{}
		ctx.Locals(ConfigErrorKey, err)
	}

	ctx.Locals(ConfigKey, cfg)
	return ctx.Next()
}

func (m *middleware) GetConfig(ctx *fiber.Ctx) entity.Config {
	cfg, ok := ctx.Locals(ConfigKey).(entity.Config)
	if !ok || cfg == nil {
		return entity.Config{}
	}
	return cfg
}
