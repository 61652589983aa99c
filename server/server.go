// Package server exposes the feed engine over a JSON HTTP API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/config"
	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/engine"
	"github.com/umputun/booruscope/pkg/feed"
	"github.com/umputun/booruscope/pkg/profile"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/engine.go -pkg mocks -skip-ensure -fmt goimports . Engine
//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	engine   Engine
	ledger   Ledger
	sessions *sessionStore
	feedGen  *feed.Generator
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Engine serves posts to sessions and records reactions
type Engine interface {
	Next(ctx context.Context, sess *engine.Session) (*domain.Post, error)
	Previous(sess *engine.Session) *domain.Post
	Reset(sess *engine.Session)
	UpdateFilters(sess *engine.Session, filters domain.Filters) error
	RecordInteraction(ctx context.Context, postID int64, kind domain.Interaction) error
	Predict(ctx context.Context, post domain.Post) (profile.Breakdown, error)
	ProfileReport(ctx context.Context, n int) (engine.Report, error)
	RebuildProfile(ctx context.Context) (*profile.Profile, error)
}

// Ledger provides read access to the seen posts ledger
type Ledger interface {
	Stats(ctx context.Context) (domain.LedgerStats, error)
	ByStatus(ctx context.Context, limit int, statuses ...domain.Status) ([]domain.SeenRecord, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance
func New(cfg ConfigProvider, eng Engine, ledger Ledger, version string, debug bool) *Server {
	full := cfg.GetFullConfig()
	filters, err := full.Filters()
	if err != nil {
		lgr.Printf("[WARN] invalid default filters, using built-in: %v", err)
		filters = domain.DefaultFilters()
	}

	s := &Server{
		config:   cfg,
		engine:   eng,
		ledger:   ledger,
		sessions: newSessionStore(full.Server.SessionTTL, filters),
		feedGen:  feed.NewGenerator(full.Server.BaseURL, full.Booru.BaseURL, postURL(full.Booru)),
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// postURL links feed items to post pages of the configured board
func postURL(cfg config.BooruConfig) func(int64) string {
	kind, err := booru.ParseKind(cfg.Kind)
	if err != nil {
		kind = booru.KindDanbooru
	}
	return func(id int64) string { return booru.PostURL(kind, cfg.BaseURL, id) }
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// a single next call can walk many board pages with courtesy delays
		WriteTimeout: 0,
		IdleTimeout:  timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("booruscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /next", s.nextHandler)
		r.HandleFunc("GET /previous", s.previousHandler)
		r.HandleFunc("POST /interactions", s.interactionHandler)
		r.HandleFunc("POST /reset", s.resetHandler)
		r.HandleFunc("PUT /filters", s.filtersHandler)
		r.HandleFunc("GET /filters", s.getFiltersHandler)
		r.HandleFunc("GET /profile", s.profileHandler)
		r.HandleFunc("POST /profile/rebuild", s.rebuildProfileHandler)
	})

	s.router.HandleFunc("GET /rss/liked", s.likedRSSHandler)
	s.router.Handle("GET /metrics", promhttp.Handler())
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
