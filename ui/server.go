package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"drawcast/app"
	"drawcast/internal"
)

// Server exposes the prediction over HTTP: the raw report as JSON and a
// rendered summary page. Every request runs a fresh prediction; the
// computation is small enough that caching would buy nothing.
type Server struct {
	router  *chi.Mux
	service *app.PredictionService
	logger  *internal.Logger
}

// NewServer creates the serve surface over a prediction service.
func NewServer(service *app.PredictionService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleSummary)
	s.router.Get("/api/report", s.handleReport)
	s.router.Get("/api/profiles", s.handleProfiles)
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving prediction on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Predict(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, result.Report)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Predict(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, result.Profiles)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Predict(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(RenderHTML(result))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("prediction failed: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
