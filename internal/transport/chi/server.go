// Package chi exposes the operational HTTP surface of a long-running
// pack build: liveness and Prometheus metrics. The pipeline itself is
// file-in, file-out; this server carries no exercise data.
package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	logpkg "github.com/lexikit/packgen/internal/logger"
	"github.com/lexikit/packgen/internal/version"
)

// Server serves /healthz and /metrics.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer builds the operational endpoint on the given address.
func NewServer(addr string, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// requestLogger stores a request-scoped logger, tagged with the chi
// request ID, in the request context.
func requestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := base.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
			next.ServeHTTP(w, r.WithContext(logpkg.NewContext(r.Context(), log)))
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	logpkg.FromContext(r.Context()).Debug("health check")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
	})
}

// Start serves in a goroutine until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Starting metrics server", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Metrics server error", zap.Error(err))
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
