package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/babcock-cleaning/internal/config"
	"github.com/iliyamo/babcock-cleaning/internal/intake"
	"github.com/iliyamo/babcock-cleaning/internal/model"
	"github.com/iliyamo/babcock-cleaning/internal/monitoring"
	"github.com/iliyamo/babcock-cleaning/internal/queue"
	"github.com/iliyamo/babcock-cleaning/internal/templates"
)

const publishTimeout = 3 * time.Second

// EventPublisher announces stored booking requests to other systems.
type EventPublisher interface {
	PublishBookingRequested(ctx context.Context, event queue.BookingRequestedEvent) error
}

// ErrorReporter forwards unexpected failures to an error tracker.
type ErrorReporter interface {
	CaptureError(err error, extra map[string]any)
}

// BookingHandler serves the booking form endpoint.  Events and Reporter are
// optional.
type BookingHandler struct {
	Cfg      config.Config
	Intake   *intake.Service
	Events   EventPublisher
	Reporter ErrorReporter
	Log      *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.  svc must be non-nil.
func NewBookingHandler(cfg config.Config, svc *intake.Service, log *zap.Logger) *BookingHandler {
	if svc == nil {
		panic("nil intake service passed to NewBookingHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BodyReadTimeout <= 0 {
		cfg.BodyReadTimeout = 10 * time.Second
	}
	if cfg.DB.Timeout <= 0 {
		cfg.DB.Timeout = 5 * time.Second
	}
	return &BookingHandler{Cfg: cfg, Intake: svc, Log: log}
}

// Submit handles POST /contact.  It reads the urlencoded form, validates and
// stores it, then renders exactly one page: the confirmation with the new
// request id, or the error page with status 400 (input) or 500 (ours).
func (h *BookingHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	// The deadline on the connection makes a stalled client's read fail
	// instead of pinning the body, so the error page can still be written.
	// Recorders don't support it; the context bounds the wait there.
	rc := http.NewResponseController(c.Response())
	_ = rc.SetReadDeadline(time.Now().Add(h.Cfg.BodyReadTimeout))
	readCtx, cancel := context.WithTimeout(ctx, h.Cfg.BodyReadTimeout)
	form, err := intake.ReadForm(readCtx, c.Request().Body)
	cancel()
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			// body limit exceeded; the error handler renders it with its own status
			return he
		}
		return h.fail(c, &intake.SystemError{Err: err})
	}
	_ = rc.SetReadDeadline(time.Time{})

	dbCtx, cancel := context.WithTimeout(ctx, h.Cfg.DB.Timeout)
	req, err := h.Intake.Submit(dbCtx, form)
	cancel()
	if err != nil {
		return h.fail(c, err)
	}

	monitoring.BookingRequestsTotal.WithLabelValues(monitoring.OutcomeCreated).Inc()
	h.Log.Info("booking request created",
		zap.Uint64("request_id", req.ID),
		zap.Int("service_id", req.ServiceID),
		zap.String("x_request_id", c.Response().Header().Get(echo.HeaderXRequestID)))

	h.publish(ctx, req, form)

	return render(c, http.StatusOK, templates.SuccessPage(templates.SuccessView{
		RequestID: req.ID,
		HomeURL:   h.Cfg.HomeURL,
	}))
}

func (h *BookingHandler) fail(c echo.Context, err error) error {
	var (
		ve *intake.ValidationError
		pe *intake.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		monitoring.BookingRequestsTotal.WithLabelValues(monitoring.OutcomeInvalid).Inc()
		h.Log.Info("booking request rejected", zap.Strings("problems", ve.Problems))
	case errors.As(err, &pe):
		monitoring.BookingRequestsTotal.WithLabelValues(monitoring.OutcomeDBError).Inc()
		h.Log.Error("booking request not stored", zap.Error(pe.Err))
		h.report(c, err)
	default:
		monitoring.BookingRequestsTotal.WithLabelValues(monitoring.OutcomeSystemError).Inc()
		h.Log.Error("booking request failed", zap.Error(err))
		h.report(c, err)
	}
	return render(c, intake.StatusCode(err), templates.ErrorPage(templates.ErrorView{
		Errors: intake.Messages(err),
	}))
}

func (h *BookingHandler) publish(ctx context.Context, req model.BookingRequest, form intake.Form) {
	if h.Events == nil {
		return
	}
	// The response is already decided; the client going away must not drop the event.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := queue.BookingRequestedEvent{
		RequestID:    req.ID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.Address,
		ServiceID:    req.ServiceID,
		ServiceLabel: intake.ServiceLabel(form.Get(intake.FieldServiceType)),
		CleanDate:    form.Get(intake.FieldCleanDate),
		Status:       req.Status,
		RequestedAt:  req.RequestDate.Format(time.RFC3339),
	}
	if err := h.Events.PublishBookingRequested(pctx, ev); err != nil {
		h.Log.Warn("booking event not published", zap.Uint64("request_id", req.ID), zap.Error(err))
		if h.Reporter != nil {
			h.Reporter.CaptureError(err, map[string]any{"request_id": req.ID, "stage": "publish"})
		}
	}
}

func (h *BookingHandler) report(c echo.Context, err error) {
	if h.Reporter == nil {
		return
	}
	h.Reporter.CaptureError(err, map[string]any{
		"path":       c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

// render writes component as the complete response with
// Content-Type text/html; charset=utf-8.
func render(c echo.Context, status int, component templ.Component) error {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(c.Response(), c.Request())
	return nil
}
