package middleware

import (
	"errors"
	"time"

	"inventory/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records every request on m, labelled by the matched route
// pattern rather than the raw path.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.Observe(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
