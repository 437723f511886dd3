// Package server exposes artwork resolution, blurhash placeholders and client
// feature detection over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/kinoart/internal/placeholder"
	"github.com/mmcdole/kinoart/internal/service"
)

// Server is the HTTP API
type Server struct {
	svc     *service.ArtworkService
	decoder *placeholder.Decoder
	logger  *slog.Logger
	router  *mux.Router
}

// New creates the API server and registers its routes
func New(svc *service.ArtworkService, decoder *placeholder.Decoder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, decoder: decoder, logger: logger}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging(s.logger), Metrics(DefaultMetricsConfig()))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/Items/{id}/ImageInfo", s.handleImageInfo).Methods(http.MethodGet)
	r.HandleFunc("/Items/{id}/Logo", s.handleLogo).Methods(http.MethodGet)
	r.HandleFunc("/placeholder", s.handlePlaceholder).Methods(http.MethodGet)
	r.HandleFunc("/features", s.handleFeatures).Methods(http.MethodGet)

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http server shutdown error", "error", err)
		return err
	}
	return nil
}
