// Package metrics holds the Prometheus collectors the dashboard server exports.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes, as recorded by RecordRefresh.
const (
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
	RefreshSignout   = "signout"
)

type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	TokenRefreshes *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	Signouts       prometheus.Counter
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quoteadmin_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quoteadmin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds, including calls to the API",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		TokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quoteadmin_token_refreshes_total",
				Help: "Access token refreshes by outcome",
			},
			[]string{"outcome"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quoteadmin_logins_total",
				Help: "Sign-in attempts by result",
			},
			[]string{"result"},
		),
		Signouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quoteadmin_forced_signouts_total",
				Help: "Sessions ended because they could not be refreshed",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordRequest(route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordRefresh(outcome string) {
	m.TokenRefreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordLogin(ok bool) {
	result := "rejected"
	if ok {
		result = "accepted"
	}
	m.Logins.WithLabelValues(result).Inc()
}
