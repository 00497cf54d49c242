package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	rendersTotal      *prometheus.CounterVec
	renderSamples     prometheus.Histogram
	renderGaps        prometheus.Histogram
	renderNotes       prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_renders_total",
			Help: "Total charts rendered by output format.",
		}, []string{"format"}),
		renderSamples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chart_render_samples",
			Help:    "Number of samples per rendered chart.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		}),
		renderGaps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chart_render_gaps",
			Help:    "Number of gaps detected per rendered chart.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		renderNotes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chart_render_fallbacks_total",
			Help: "Total fallbacks taken while composing charts.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.rendersTotal,
		m.renderSamples,
		m.renderGaps,
		m.renderNotes,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ChartRendered records one composed chart.
func (m *Metrics) ChartRendered(format string, samples, gaps, notes int) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(format).Inc()
	m.renderSamples.Observe(float64(samples))
	m.renderGaps.Observe(float64(gaps))
	m.renderNotes.Add(float64(notes))
}
