// Package metrics collects and exposes the server's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "poorify"

// Outcomes of an OAuth callback.
const (
	LoginSuccess        = "success"
	LoginInvalidState   = "invalid_state"
	LoginExchangeFailed = "exchange_failed"
	LoginSessionFailed  = "session_failed"
)

// A Recorder records authentication events.
type Recorder interface {
	RecordLogin(outcome string)
	RecordLogout()
}

// Collector implements Recorder and middleware.ResponseRecorder on Prometheus metrics.
type Collector struct {
	logins       *prometheus.CounterVec
	logouts      prometheus.Counter
	responses    *prometheus.CounterVec
	respDuration *prometheus.HistogramVec
}

// NewCollector constructs a *Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "OAuth callbacks handled, by outcome.",
		}, []string{"outcome"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Logout requests handled.",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "HTTP responses written, by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		respDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_duration_seconds",
			Help:      "Time taken to write HTTP responses, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.logins,
		c.logouts,
		c.responses,
		c.respDuration,
	)

	return c
}

// RecordLogin counts an OAuth callback ending in outcome.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordLogout counts a logout.
func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

// RecordResponse counts a response and observes how long it took.
func (c *Collector) RecordResponse(method, route string, status int, elapsed time.Duration) {
	c.responses.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.respDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
