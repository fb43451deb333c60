package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/scholarmcp/paperparse/internal/config"
	"github.com/scholarmcp/paperparse/internal/docparse"
	"github.com/scholarmcp/paperparse/internal/pipeline"
	"github.com/scholarmcp/paperparse/internal/stats"
)

// Server is the HTTP API server for paperparse.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *stats.ParseStats
	log          *slog.Logger
	cfg          config.Config
	parseCfg     docparse.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, st *stats.ParseStats, log *slog.Logger, cfg config.Config, parseCfg docparse.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        st,
		log:          log,
		cfg:          cfg,
		parseCfg:     parseCfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Parse endpoints; authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/parse", s.handleParseFile)
		r.Post("/parse/upload", s.handleParseUpload)
		r.Post("/parse/batch", s.handleParseBatch)
		r.Get("/parse/jobs/{jobID}", s.handleJobStatus)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
