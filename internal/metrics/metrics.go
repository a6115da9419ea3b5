// Package metrics provides Prometheus instrumentation for brochure.
//
// Each [Metrics] owns its own registry, so several servers (or tests) in one
// process do not collide on registration. A nil *Metrics is valid and records
// nothing, which is how metrics are switched off.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brochure"

// unmatchedRoute labels requests that no route matched, keeping the path
// label bounded.
const unmatchedRoute = "unmatched"

// Metrics holds the collectors for one server.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge
	responseSize    *prometheus.HistogramVec
	renders         *prometheus.CounterVec
	assets          *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Response body sizes in bytes.",
				Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "route"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "outcomes_total",
				Help:      "Page render attempts by page and outcome.",
			},
			[]string{"page", "outcome"},
		),
		assets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "assets",
				Name:      "responses_total",
				Help:      "Static asset responses by status code.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.inFlight,
		m.responseSize,
		m.renders,
		m.assets,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text and OpenMetrics
// formats.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Middleware records duration, count, in-flight and response size for every
// request. It must run inside a chi router so the matched route pattern can
// be used as the label instead of the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		m.requestDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(r.Method, route, code).Inc()
		m.responseSize.WithLabelValues(r.Method, route).Observe(float64(ww.BytesWritten()))
	})
}

// ObserveRender counts one render attempt.
func (m *Metrics) ObserveRender(page, outcome string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(page, outcome).Inc()
}

// ObserveAsset counts one asset response.
func (m *Metrics) ObserveAsset(status int) {
	if m == nil {
		return
	}
	m.assets.WithLabelValues(strconv.Itoa(status)).Inc()
}
