package monitoring

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes recorded by BookingRequestsTotal.
const (
	OutcomeCreated     = "created"
	OutcomeInvalid     = "invalid"
	OutcomeDBError     = "db_error"
	OutcomeSystemError = "system_error"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	BookingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_requests_total",
			Help: "Booking form submissions by outcome",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry.  Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(BookingRequestsTotal)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
