package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/pkg/logger"
)

// RequestLogger logs every request with method, path, status and duration.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
