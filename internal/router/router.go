package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // stock echo middleware (recover, body limit)
	"go.uber.org/zap"                               // structured logger handed to middleware

	"github.com/iliyamo/babcock-cleaning/internal/handler"    // import the handlers that implement the booking flow
	"github.com/iliyamo/babcock-cleaning/internal/middleware" // request ids, request logging and metrics
	"github.com/iliyamo/babcock-cleaning/internal/monitoring" // prometheus exposition handler
)

// Options carries what New needs besides the handlers themselves.
type Options struct {
	Log       *zap.Logger
	Reporter  handler.ErrorReporter
	BodyLimit string // e.g. "64K"; empty leaves request bodies unbounded
}

// New builds the Echo instance with the middleware chain and error page
// renderer installed, then registers all routes.
func New(b *handler.BookingHandler, db handler.Pinger, opts Options) *echo.Echo {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log, opts.Reporter)

	// Order matters: ids first so every later log line carries one, recover
	// last so a panic still passes through metrics and logging.
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.PrometheusMetrics())
	// The panic comes back as an error so metrics and the request log see it.
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{DisableErrorHandler: true}))

	RegisterRoutes(e, b, db, opts.BodyLimit)
	return e
}

// RegisterRoutes maps the site's endpoints onto e.
func RegisterRoutes(e *echo.Echo, b *handler.BookingHandler, db handler.Pinger, bodyLimit string) {
	// Liveness and readiness probes for load balancers.
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	// Prometheus scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(monitoring.Handler()))

	// The booking form posts here.
	var mw []echo.MiddlewareFunc
	if bodyLimit != "" {
		mw = append(mw, echomw.BodyLimit(bodyLimit))
	}
	e.POST("/contact", b.Submit, mw...)
}
