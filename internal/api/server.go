package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/config"
	"github.com/JakeFAU/moviecatalog/internal/metrics"
	"github.com/JakeFAU/moviecatalog/internal/views"
)

// Syncer refreshes the deployed checkout when the webhook fires.
type Syncer interface {
	Sync(ctx context.Context) ([]byte, error)
}

// Dependencies are the collaborators the handlers call into. Health,
// Publisher and Syncer are optional.
type Dependencies struct {
	Movies     catalog.MovieRepository
	Categories catalog.CategoryRepository
	Health     catalog.Pinger
	Publisher  catalog.Publisher
	Syncer     Syncer
	Clock      catalog.Clock
	Views      *views.Renderer
}

// Server wires HTTP handlers to the catalog stores.
type Server struct {
	router     chi.Router
	movies     catalog.MovieRepository
	categories catalog.CategoryRepository
	health     catalog.Pinger
	publisher  catalog.Publisher
	syncer     Syncer
	clock      catalog.Clock
	views      *views.Renderer
	cfg        config.Config
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(deps Dependencies, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Views == nil {
		deps.Views = views.MustNew()
	}
	s := &Server{
		movies:     deps.Movies,
		categories: deps.Categories,
		health:     deps.Health,
		publisher:  deps.Publisher,
		syncer:     deps.Syncer,
		clock:      deps.Clock,
		views:      deps.Views,
		cfg:        cfg,
		logger:     logger,
	}

	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.Init()
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(timeoutMiddleware(timeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", s.home)
	r.Get("/movie_list", s.movieList)
	r.Get("/add", s.addForm)
	r.Post("/add", s.addMovie)
	r.Get("/edit/{id}", s.editForm)
	r.Post("/edit/{id}", s.editMovie)
	r.Get("/delete/{id}", s.deleteMovie)
	r.Get("/top10", s.topRated)

	if cfg.WebhookEnabled() && s.syncer != nil {
		limit := cfg.Webhook.RateLimitRequests
		window := cfg.WebhookRateWindow()
		if limit <= 0 || window <= 0 {
			limit, window = 10, time.Minute
		}
		r.With(httprate.LimitByIP(limit, window)).Post("/webhook", s.handleWebhook)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, catalog.ErrNotFound)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.requestLogger(r).Warn("store not ready", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}
