package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/babcock-cleaning/internal/monitoring"
)

// PrometheusMetrics records request count and latency per route.
func PrometheusMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Write the error page now so the status is final.  err still
				// travels up to the request logger; the handler skips a
				// committed response.
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if status == 0 {
				status = http.StatusOK
			}
			monitoring.RequestsTotal.WithLabelValues(
				c.Request().Method,
				path,
				strconv.Itoa(status),
			).Inc()
			monitoring.RequestDuration.WithLabelValues(
				c.Request().Method,
				path,
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
