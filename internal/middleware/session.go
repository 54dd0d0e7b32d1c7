package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	jwtPkg "intentbot/pkg/jwt"
	"intentbot/pkg/redis"
)

const SessionKey = "session"

type sessionMiddleware struct {
	signer  jwtPkg.ITokenSigner
	revoked redis.IRedis
}

func newSessionMiddleware(signer jwtPkg.ITokenSigner, revoked redis.IRedis) *sessionMiddleware {
	return &sessionMiddleware{
		signer:  signer,
		revoked: revoked,
	}
}

// NewSessionMiddleware guards the admin API. It must run after
// NewConfigMiddleware: without a configured password every request passes,
// and nothing passes while the configuration cannot be read.
func (m *middleware) NewSessionMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	if err, failed := ctx.Locals(ConfigErrorKey).(error); failed && err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Warn("Admin request refused, configuration unavailable")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Configuration unavailable, try again later",
			"code":  "CONFIG_UNAVAILABLE",
		})
	}

	cfg := m.GetConfig(ctx)
	if cfg.String(entity.ConfigPassword) == "" {
		return ctx.Next()
	}

	unauthorized := func(reason string) error {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"reason":     reason,
		}).Warn("Admin session rejected")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, session invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	token := ctx.Cookies(jwtPkg.CookieName)
	if token == "" {
		return unauthorized("missing session cookie")
	}

	if m.session.signer == nil {
		return unauthorized("token signer not configured")
	}

	claims, err := m.session.signer.Verify(token, ctx.Hostname())
	if err != nil {
		return unauthorized(err.Error())
	}

	if claims.AutomationID != cfg.String(entity.ConfigUniqueID) {
		return unauthorized("token issued for another automation")
	}

	if m.session.revoked != nil {
		revoked, err := m.session.revoked.IsRevoked(contextPkg.FromFiberCtx(ctx), claims.ID)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to check token revocation")
			return unauthorized("revocation check failed")
		}
		if revoked {
			return unauthorized("token revoked")
		}
	}

	ctx.Locals(SessionKey, claims)
	return ctx.Next()
}

func (m *middleware) GetSession(ctx *fiber.Ctx) *jwtPkg.Claims {
	claims, ok := ctx.Locals(SessionKey).(*jwtPkg.Claims)
	if !ok {
		return nil
	}
	return claims
}
