package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the readiness ping
	"net/http" // net/http provides status codes and response helpers
	"time"     // time sets the ping deadline

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health is a simple liveness endpoint used by load balancers and
// monitoring systems to verify that the process is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready returns a readiness handler that reports 503 when the database does
// not answer a ping within two seconds.
func Ready(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.String(http.StatusOK, "ready")
	}
}
