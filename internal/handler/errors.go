package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/babcock-cleaning/internal/intake"
	"github.com/iliyamo/babcock-cleaning/internal/templates"
)

// HTTPErrorHandler renders every error that reaches echo, including
// recovered panics, as the HTML error page.  Framework errors keep their
// status code; anything else becomes a 500 "System error".
func HTTPErrorHandler(log *zap.Logger, reporter ErrorReporter) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			he       *echo.HTTPError
			status   int
			messages []string
		)
		if errors.As(err, &he) {
			status = he.Code
			messages = []string{httpErrorText(he)}
		} else {
			status = intake.StatusCode(err)
			messages = intake.Messages(err)
		}

		if status >= http.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			if reporter != nil {
				reporter.CaptureError(err, map[string]any{
					"path":       c.Path(),
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				})
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = render(c, status, templates.ErrorPage(templates.ErrorView{Errors: messages}))
	}
}

func httpErrorText(he *echo.HTTPError) string {
	if he.Message == nil {
		return http.StatusText(he.Code)
	}
	if s, ok := he.Message.(string); ok {
		return s
	}
	return fmt.Sprint(he.Message)
}
