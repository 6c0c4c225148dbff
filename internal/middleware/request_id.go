package middleware

import (
	"strings"

	"inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the Fiber locals key holding the request id.
const RequestIDKey = "requestid"

const maxRequestIDLength = 128

// RequestID accepts the caller's X-Request-ID or generates one, echoes it on
// the response and attaches it to the request's logging context.
func RequestID(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(fiber.HeaderXRequestID, requestID)
		c.Locals(RequestIDKey, requestID)
		c.SetUserContext(log.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
