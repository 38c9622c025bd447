// SPDX-License-Identifier: MIT

// Package api serves the loaded dataset over HTTP: entity listings with
// parent filters, record counts and on-demand exports.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geodatabr/geodatabr/internal/dataset"
	xlog "github.com/geodatabr/geodatabr/internal/log"
	"github.com/geodatabr/geodatabr/internal/metrics"
)

// Server exposes a read-only HTTP view of one dataset snapshot.
type Server struct {
	ds        *dataset.Dataset
	minify    bool
	rateLimit int
	startTime time.Time

	states         map[int64]dataset.State
	municipalities map[int64]dataset.Municipality
}

// Option configures the Server.
type Option func(*Server)

// WithMinify makes on-demand exports produce minified output.
func WithMinify(minify bool) Option {
	return func(s *Server) { s.minify = minify }
}

// WithRateLimit sets the per-IP request budget per minute.
func WithRateLimit(limit int) Option {
	return func(s *Server) { s.rateLimit = limit }
}

// NewServer builds a server over the given dataset.
func NewServer(ds *dataset.Dataset, opts ...Option) *Server {
	s := &Server{
		ds:             ds,
		rateLimit:      600,
		startTime:      time.Now(),
		states:         make(map[int64]dataset.State, len(ds.States)),
		municipalities: make(map[int64]dataset.Municipality, len(ds.Municipalities)),
	}
	for _, st := range ds.States {
		s.states[st.ID] = st
	}
	for _, m := range ds.Municipalities {
		s.municipalities[m.ID] = m
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router assembles the chi router with the canonical middleware stack:
// recoverer, request logging, metrics, rate limiting.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(xlog.Middleware())
	r.Use(metrics.Middleware())
	r.Use(httprate.Limit(
		s.rateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded")
		}),
	))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/estados", s.handleStates)
		r.Get("/estados/{id}", s.handleStateByID)
		r.Get("/mesorregioes", s.handleMesoregions)
		r.Get("/microrregioes", s.handleMicroregions)
		r.Get("/municipios", s.handleMunicipalities)
		r.Get("/municipios/{id}", s.handleMunicipalityByID)
		r.Get("/distritos", s.handleDistricts)
		r.Get("/subdistritos", s.handleSubdistricts)
		r.Get("/stats", s.handleStats)
		r.Get("/export/{format}", s.handleExport)
	})

	return r
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				xlog.FromContext(r.Context()).Error().
					Str("event", "http.panic").
					Interface("panic", rec).
					Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "internal_error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
