// Package httpserver serves the sandbox API, the admin surface and the
// static admin page.
package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feedlab/snsbox/internal/config"
	"github.com/feedlab/snsbox/internal/events"
	"github.com/feedlab/snsbox/internal/faults"
	"github.com/feedlab/snsbox/internal/snapshot"
)

// pageSize is the fixed timeline page size.
const pageSize = 20

// Server is the HTTP server for the sandbox.
type Server struct {
	cfg        *config.Config
	store      *snapshot.Store
	faults     *faults.Controller
	sampler    faults.Sampler
	hub        *events.Hub
	validate   *validator.Validate
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer wires routes over the given store, fault controller and
// event hub. The sampler decides error-injection outcomes; pass
// faults.RandSampler in production.
func NewServer(
	cfg *config.Config,
	store *snapshot.Store,
	ctrl *faults.Controller,
	sampler faults.Sampler,
	hub *events.Hub,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		faults:   ctrl,
		sampler:  sampler,
		hub:      hub,
		validate: validator.New(),
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     s.Handler(),
		ReadTimeout: 10 * time.Second,
		// Leaves room for the latency gate's 2s ceiling plus handler time.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully assembled route tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/posts", s.handleGetPosts)
	mux.HandleFunc("POST /api/posts", s.handleCreatePost)
	mux.HandleFunc("POST /api/posts/{id}/like", s.handleToggleLike)
	mux.HandleFunc("GET /api/users/me", s.handleGetMe)
	mux.HandleFunc("PATCH /api/users/me", s.handlePatchMe)

	mux.HandleFunc("POST /admin/seed", s.handleSeed)
	mux.HandleFunc("POST /admin/reset", s.handleReset)
	mux.HandleFunc("GET /admin/faults", s.handleGetFaults)
	mux.HandleFunc("POST /admin/faults", s.handleSetFaults)
	mux.HandleFunc("POST /admin/spawn", s.handleSpawn)
	mux.Handle("GET /admin/events", s.hub)
	mux.HandleFunc("GET /admin", s.handleAdminRedirect)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.PublicDir)))

	return withLogging(s.logger, s.withFaults(mux))
}

// Start begins listening for HTTP requests. It blocks until the server
// is shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminRedirect points /admin at the static admin page.
func (s *Server) handleAdminRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/index.html", http.StatusSeeOther)
}
