// Package server exposes chart rendering over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/store"
	"github.com/gorilla/mux"
)

const (
	maxPayloadBytes = 32 << 20
	shutdownTimeout = 10 * time.Second
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
)

// Server renders charts for payloads posted to it, or for samples held in
// the store when one is attached.
type Server struct {
	defaults render.ViewState
	format   string
	repo     store.Repository
	logger   logger.Logger
	metrics  *Metrics
	router   *mux.Router
}

// New builds a server. defaults supplies the view settings a request does
// not override; repo may be nil, in which case the store routes answer 503.
func New(defaults render.ViewState, format string, repo store.Repository, log logger.Logger) *Server {
	s := &Server{
		defaults: defaults,
		format:   format,
		repo:     repo,
		logger:   log,
		metrics:  NewMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", s.metrics.WrapHandler("health", http.HandlerFunc(s.health))).Methods(http.MethodGet)
	r.Handle("/profiles", s.metrics.WrapHandler("profiles", http.HandlerFunc(s.profiles))).Methods(http.MethodGet)
	r.Handle("/render", s.metrics.WrapHandler("render", http.HandlerFunc(s.renderPayload))).Methods(http.MethodPost)
	r.Handle("/frame", s.metrics.WrapHandler("frame", http.HandlerFunc(s.framePayload))).Methods(http.MethodPost)
	r.Handle("/users", s.metrics.WrapHandler("users", http.HandlerFunc(s.users))).Methods(http.MethodGet)
	r.Handle("/users/{user}/{metric}/render", s.metrics.WrapHandler("render_stored", http.HandlerFunc(s.renderStored))).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errFactory := errors.New()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errFactory.Wrap(ErrServeFailed, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down HTTP service")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errFactory.Wrap(errors.ErrShutdownFailed, err)
	}
	return nil
}
