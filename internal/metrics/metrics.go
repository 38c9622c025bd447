// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for the exporter and the
// HTTP distribution API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExportDuration tracks per-format export latency.
	ExportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodatabr_export_duration_seconds",
		Help:    "Dataset export latencies in seconds, per format",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})

	// ExportsTotal counts export outcomes per format.
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geodatabr_exports_total",
		Help: "Total dataset exports, per format and outcome",
	}, []string{"format", "outcome"})

	// ExportBytes tracks produced artifact sizes per format.
	ExportBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodatabr_export_bytes",
		Help:    "Exported artifact sizes in bytes, per format",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	}, []string{"format"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodatabr_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "geodatabr_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})
)

// ObserveExport records one export outcome.
func ObserveExport(format string, bytes int, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ExportsTotal.WithLabelValues(format, outcome).Inc()
	if err == nil {
		ExportDuration.WithLabelValues(format).Observe(d.Seconds())
		ExportBytes.WithLabelValues(format).Observe(float64(bytes))
	}
}

type metricsWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records Prometheus metrics for HTTP requests. The chi route
// pattern is used as the path label to avoid cardinality explosion.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			mw := &metricsWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(mw, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			httpRequestDuration.
				WithLabelValues(r.Method, path, strconv.Itoa(mw.statusCode)).
				Observe(time.Since(start).Seconds())
		})
	}
}
