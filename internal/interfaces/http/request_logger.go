package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

// RequestLogger logs one line per request: method, path, status, duration,
// the request id and (after AuthMiddleware) the viewer id. The request id is
// reused from the incoming X-Request-ID header when the caller sent one.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)

		start := time.Now()
		err := c.Next()

		ev := log.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("requestId", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start))
		if id := GetUserID(c); id != 0 {
			ev.Int64("userId", id)
		}
		ev.Msg("request")
		return err
	}
}
