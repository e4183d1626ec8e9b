// Package api serves the computation engine and the loaded catalog over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/state"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	state   *state.Manager
	log     *logging.Logger
	version string
	cfg     config.ServerConfig
}

// NewServer creates a server backed by m. A nil logger discards output.
func NewServer(m *state.Manager, log *logging.Logger, version string, cfg config.ServerConfig) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{state: m, log: log.With("component", "api"), version: version, cfg: cfg}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/transform", func(r chi.Router) {
			r.Get("/galactic-to-equatorial", s.handleGalacticToEquatorial)
			r.Get("/equatorial-to-galactic", s.handleEquatorialToGalactic)
			r.Post("/cartesian", s.handleCartesian)
		})

		r.Route("/octants", func(r chi.Router) {
			r.Get("/", s.handleOctants)
			r.Post("/classify", s.handleClassify)
			r.Get("/{id}", s.handleOctant)
		})

		r.Route("/territories", func(r chi.Router) {
			r.Get("/", s.handleTerritories)
			r.With(s.synthesizeLimit()).Post("/", s.handleSynthesize)
			r.Get("/{name}", s.handleTerritory)
		})

		r.Route("/stars", func(r chi.Router) {
			r.Get("/", s.handleStars)
			r.Get("/{name}", s.handleStar)
		})

		r.Get("/habitable-zone", s.handleHabitableZone)
		r.Post("/binary", s.handleBinary)
		r.Get("/events", s.handleEvents)
		r.Get("/events/stream", s.handleEventStream)
	})

	return r
}

// synthesizeLimit bounds territory synthesis requests per client IP.
func (s *Server) synthesizeLimit() func(http.Handler) http.Handler {
	if s.cfg.SynthesizeRPM <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		s.cfg.SynthesizeRPM,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			s.respondError(w, http.StatusTooManyRequests, &APIError{
				Code:    CodeRateLimited,
				Message: fmt.Sprintf("at most %d synthesis requests per minute", s.cfg.SynthesizeRPM),
			})
		}),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	cfg := s.cfg
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
