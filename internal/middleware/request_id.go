package middleware

import (
	"github.com/gofiber/fiber/v2"
	"intentbot/pkg/utils"
	"regexp"
	"time"
)

const RequestIDKey = "X-Request-ID"

// A caller supplied id ends up in logs and traces, so only short opaque
// tokens are accepted. Anything else is replaced with a fresh ULID.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

func newRequestIDMiddleware(ids utils.IUtils) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if !validRequestID.MatchString(requestID) {
			requestID, _ = ids.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
