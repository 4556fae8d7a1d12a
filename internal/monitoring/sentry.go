package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global Sentry client.  An empty dsn leaves the
// SDK disabled; CaptureError is then a no-op.  The returned func flushes
// buffered events and should run before exit.
func InitSentry(dsn, env, version string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "babcock-cleaning@" + version,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return func() {}, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// SentryReporter sends errors to the current Sentry hub.
type SentryReporter struct{}

// CaptureError records err with extra context attached to the event.  Each
// call works on its own clone of the current hub, so concurrent requests
// never share a scope.
func (SentryReporter) CaptureError(err error, extra map[string]any) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) { scope.SetExtras(extra) })
	hub.CaptureException(err)
}
