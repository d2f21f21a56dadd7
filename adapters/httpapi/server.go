// Package httpapi exposes the analysis engine over a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"e2pred/internal"
	"e2pred/ports"
)

// Server wraps the chi router around an Analyzer.
type Server struct {
	router   *chi.Mux
	analyzer ports.Analyzer
	logger   *internal.Logger
}

// NewServer creates the HTTP surface for the given analyzer.
func NewServer(analyzer ports.Analyzer, logger *internal.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		logger:   logger.Named("httpapi"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/parametric/binary", s.handleParametricBinary)
		r.Post("/parametric/continuous", s.handleParametricContinuous)
		r.Post("/empirical/binary", s.handleEmpiricalBinary)
		r.Post("/empirical/binary/deattenuated", s.handleEmpiricalBinaryDeattenuated)
		r.Post("/empirical/continuous", s.handleEmpiricalContinuous)
		r.Post("/empirical/continuous/deattenuated", s.handleEmpiricalContinuousDeattenuated)
		r.Post("/convert", s.handleConvert)
		r.Post("/threshold/optimal", s.handleOptimalThreshold)
		r.Post("/reliability/attenuate", s.handleReliabilityAttenuation)
	})
}

// Handler returns the root handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
