package handler

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/babcock-cleaning/internal/config"
	"github.com/iliyamo/babcock-cleaning/internal/intake"
	"github.com/iliyamo/babcock-cleaning/internal/model"
	"github.com/iliyamo/babcock-cleaning/internal/queue"
)

type stubStore struct {
	mu    sync.Mutex
	calls int
	last  model.BookingRequest
	id    uint64
	err   error
}

func (s *stubStore) Create(_ context.Context, b *model.BookingRequest) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = *b
	return s.id, s.err
}

type stubPublisher struct {
	events []queue.BookingRequestedEvent
	err    error
}

func (p *stubPublisher) PublishBookingRequested(_ context.Context, ev queue.BookingRequestedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type stubReporter struct{ errs []error }

func (r *stubReporter) CaptureError(err error, _ map[string]any) { r.errs = append(r.errs, err) }

func testConfig() config.Config {
	cfg := config.Config{HomeURL: "/index.html", BodyReadTimeout: time.Second}
	cfg.DB.Timeout = time.Second
	return cfg
}

func newTestServer(t *testing.T, store *stubStore) (*echo.Echo, *BookingHandler) {
	t.Helper()

	h := NewBookingHandler(testConfig(), intake.NewService(store, nil), nil)
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil, nil)
	e.POST("/contact", h.Submit)
	return e, h
}

func scenarioA() url.Values {
	return url.Values{
		"full_name":      {"Jane Doe"},
		"phone_number":   {"555-123-4567"},
		"email":          {"jane@x.com"},
		"city":           {"Lagos"},
		"bedrooms":       {"3"},
		"bathrooms":      {"2"},
		"square_footage": {"1500"},
		"service_type":   {"deep_onetime"},
		"clean_date":     {"2024-05-01"},
		"source":         {"Google"},
	}
}

func postForm(e *echo.Echo, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubmitRendersSuccessPage(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 101}
	e, h := newTestServer(t, store)
	pub := &stubPublisher{}
	h.Events = pub

	rec := postForm(e, scenarioA())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Your Request ID: #101") {
		t.Fatalf("body missing request id: %s", rec.Body.String())
	}
	if store.calls != 1 {
		t.Fatalf("store calls = %d, want 1", store.calls)
	}
	if store.last.ServiceID != 1 || store.last.Status != model.StatusPending {
		t.Fatalf("stored = %+v", store.last)
	}
	if !strings.Contains(store.last.Message, "- Service Type: Deep Cleaning / One Time") {
		t.Fatalf("message = %q", store.last.Message)
	}
	if len(pub.events) != 1 || pub.events[0].RequestID != 101 || pub.events[0].ServiceLabel != "Deep Cleaning / One Time" {
		t.Fatalf("events = %+v", pub.events)
	}
}

func TestSubmitRejectsMissingEmail(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 1}
	e, _ := newTestServer(t, store)
	form := scenarioA()
	form.Del("email")

	rec := postForm(e, form)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing required field: email") {
		t.Fatalf("body missing validation error: %s", rec.Body.String())
	}
	if store.calls != 0 {
		t.Fatalf("store calls = %d, want 0", store.calls)
	}
}

func TestSubmitMapsBiweeklyToWeeklyID(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 5}
	e, _ := newTestServer(t, store)
	form := scenarioA()
	form.Set("service_type", "regular_biweekly")

	if rec := postForm(e, form); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.last.ServiceID != 2 {
		t.Fatalf("service_id = %d, want 2", store.last.ServiceID)
	}
}

func TestSubmitRendersDatabaseError(t *testing.T) {
	t.Parallel()

	store := &stubStore{err: errors.New("Duplicate <entry>")}
	e, h := newTestServer(t, store)
	rep := &stubReporter{}
	h.Reporter = rep
	pub := &stubPublisher{}
	h.Events = pub

	rec := postForm(e, scenarioA())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Database error: Duplicate &lt;entry&gt;") {
		t.Fatalf("body missing escaped database error: %s", body)
	}
	if len(rep.errs) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(rep.errs))
	}
	if len(pub.events) != 0 {
		t.Fatalf("events = %d, want 0", len(pub.events))
	}
}

func TestSubmitEscapesValidationInput(t *testing.T) {
	t.Parallel()

	e, _ := newTestServer(t, &stubStore{id: 1})
	form := scenarioA()
	form.Set("email", `<img src=x onerror=alert(1)>`)

	rec := postForm(e, form)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<img") {
		t.Fatal("user input reflected unescaped")
	}
}

func TestSubmitRendersSystemErrorForBrokenBody(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 1}
	e, _ := newTestServer(t, store)
	req := httptest.NewRequest(http.MethodPost, "/contact", iotest.ErrReader(errors.New("connection reset")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "System error:") {
		t.Fatalf("body missing system error: %s", rec.Body.String())
	}
	if store.calls != 0 {
		t.Fatalf("store calls = %d, want 0", store.calls)
	}
}

func TestSubmitAnswersStalledClientAfterReadTimeout(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 1}
	e, h := newTestServer(t, store)
	h.Cfg.BodyReadTimeout = 100 * time.Millisecond
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn, err := net.Dial("tcp", srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Promise 1000 bytes, send a few, then go quiet.
	_, err = io.WriteString(conn, "POST /contact HTTP/1.1\r\n"+
		"Host: example.com\r\n"+
		"Content-Type: application/x-www-form-urlencoded\r\n"+
		"Content-Length: 1000\r\n\r\n"+
		"full_name=Jane")
	if err != nil {
		t.Fatalf("write request: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(string(body), "System error:") {
		t.Fatalf("body missing system error: %s", body)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.calls != 0 {
		t.Fatalf("store calls = %d, want 0", store.calls)
	}
}

func TestSubmitStillSucceedsWhenPublishFails(t *testing.T) {
	t.Parallel()

	e, h := newTestServer(t, &stubStore{id: 9})
	rep := &stubReporter{}
	h.Reporter = rep
	h.Events = &stubPublisher{err: errors.New("broker down")}

	rec := postForm(e, scenarioA())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(rep.errs) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(rep.errs))
	}
}

func TestSubmitHonorsBodyLimit(t *testing.T) {
	t.Parallel()

	store := &stubStore{id: 1}
	h := NewBookingHandler(testConfig(), intake.NewService(store, nil), nil)
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil, nil)
	e.POST("/contact", h.Submit, echomw.BodyLimit("1K"))

	form := scenarioA()
	form.Set("requirements", strings.Repeat("x", 4096))
	rec := postForm(e, form)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if store.calls != 0 {
		t.Fatalf("store calls = %d, want 0", store.calls)
	}
}

func TestHTTPErrorHandlerRendersPanicsAsSystemErrors(t *testing.T) {
	t.Parallel()

	rep := &stubReporter{}
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil, rep)
	e.Use(echomw.Recover())
	e.GET("/boom", func(c echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "System error:") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if len(rep.errs) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(rep.errs))
	}
}

func TestHTTPErrorHandlerKeepsFrameworkStatus(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not Found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealthAndReady(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/healthz", Health)
	e.GET("/readyz", Ready(pinger{}))
	e.GET("/readyz-down", Ready(pinger{err: errors.New("down")}))

	for path, want := range map[string]int{
		"/healthz":     http.StatusOK,
		"/readyz":      http.StatusOK,
		"/readyz-down": http.StatusServiceUnavailable,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s status = %d, want %d", path, rec.Code, want)
		}
	}
}
