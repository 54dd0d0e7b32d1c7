package middleware

import (
	"context"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"intentbot/internal/entity"
	jwtPkg "intentbot/pkg/jwt"
	"intentbot/pkg/redis"
	"intentbot/pkg/utils"
)

// ConfigProvider returns the current runtime configuration document.
type ConfigProvider interface {
	CurrentConfig(ctx context.Context) (entity.Config, error)
}

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewSessionMiddleware(ctx *fiber.Ctx) error
	NewConfigMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
	GetConfig(ctx *fiber.Ctx) entity.Config
	GetSession(ctx *fiber.Ctx) *jwtPkg.Claims
}

type middleware struct {
	session             *sessionMiddleware
	rateLimitter        *rateLimiter
	configs             ConfigProvider
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

type Option func(*middleware)

// WithRateLimit overrides the per client webhook budget.
func WithRateLimit(reqRate rate.Limit, burstSize int) Option {
	return func(m *middleware) {
		m.rateLimitter = newRateLimiter(reqRate, burstSize)
	}
}

func New(
	logger *logrus.Logger,
	configs ConfigProvider,
	signer jwtPkg.ITokenSigner,
	revoked redis.IRedis,
	opts ...Option,
) Middleware {
	m := &middleware{
		session:             newSessionMiddleware(signer, revoked),
		rateLimitter:        newRateLimiter(50, 100),
		configs:             configs,
		requestIDMiddleware: newRequestIDMiddleware(utils.New()),
		log:                 logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
